package highlight

// TokenType is the structural role the internal highlighter assigns to a
// range of text.
type TokenType uint8

// Structural token types.
const (
	TokenNone TokenType = iota
	TokenHeading
	TokenEmphasis
	TokenStrong
	TokenCode
	TokenCodeBlock
	TokenCodeFence
	TokenLink
	TokenQuote
	TokenMetadataKey
	TokenMetadataValue

	tokenTypeCount
)

var tokenTypeNames = [tokenTypeCount]string{
	TokenNone:          "none",
	TokenHeading:       "heading",
	TokenEmphasis:      "emphasis",
	TokenStrong:        "strong",
	TokenCode:          "code",
	TokenCodeBlock:     "code.block",
	TokenCodeFence:     "code.fence",
	TokenLink:          "link",
	TokenQuote:         "quote",
	TokenMetadataKey:   "metadata.key",
	TokenMetadataValue: "metadata.value",
}

// String returns the scope-like name of a token type.
func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// IsCode returns true for inline code, code blocks and fences.
func (t TokenType) IsCode() bool {
	return t >= TokenCode && t <= TokenCodeFence
}

// IsMetadata returns true for the parts of an "@key: value" line.
func (t TokenType) IsMetadata() bool {
	return t == TokenMetadataKey || t == TokenMetadataValue
}

// TokenTypeFromString returns the token type with the given name, or
// TokenNone.
func TokenTypeFromString(name string) TokenType {
	for i, n := range tokenTypeNames {
		if n == name {
			return TokenType(i)
		}
	}
	return TokenNone
}
