// Package core provides the colour and style types shared by the paint
// operations, the highlighters and the terminal backends. It breaks import
// cycles between renderer and backend.
package core
