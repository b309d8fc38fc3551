// Package renderer provides the display layer for gridpaint.
//
// The renderer is responsible for:
//   - Drawing each grid cell as a block of colored terminal cells
//   - Panning a viewport over canvases larger than the terminal
//   - Mapping terminal positions back to grid cells
//   - Drawing the status line
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│   Viewport (pan)   │   StatusLine       │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell)  │  NullBackend       │
//	└─────────────────────────────────────────┘
//
// At scale s a grid cell covers s rows and s*CellWidth columns. Terminal
// positions convert to display units by dividing the panned column by
// CellWidth; the canvas then divides display units by its scale.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, renderer.DefaultOptions())
//	r.SetCanvas(eng)
//	r.Render()
package renderer
