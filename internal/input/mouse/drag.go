package mouse

// stroke follows a left-button drag from press to release.
type stroke struct {
	last  Position
	moves int
}

// advance moves the stroke to pos. It reports false for a repeated report of
// the last position, which terminals send while the pointer rests in a cell.
func (s *stroke) advance(pos Position) bool {
	if pos.Equal(s.last) {
		return false
	}
	s.last = pos
	s.moves++
	return true
}
