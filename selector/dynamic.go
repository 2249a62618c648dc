package selector

var _ Selector = (*Dynamic)(nil)

// Dynamic owns an ordered list of child selectors and forwards every query
// to the child picked by the current mode. Mode switches must be serialized
// with in-flight queries by the caller.
type Dynamic struct {
	children []Selector
	mode     int
}

// NewDynamic creates a dynamic selector over the given children, starting in
// the given mode.
func NewDynamic(children []Selector, mode int) (*Dynamic, error) {
	if len(children) == 0 {
		return nil, ErrNoSelectors
	}
	if mode < 0 || mode >= len(children) {
		return nil, &ErrInvalidMode{Mode: mode, Len: len(children)}
	}

	owned := make([]Selector, len(children))
	copy(owned, children)

	return &Dynamic{children: owned, mode: mode}, nil
}

func (s *Dynamic) Name() string { return "Dynamic Selector" }

// Mode returns the index of the active child.
func (s *Dynamic) Mode() int { return s.mode }

// SetMode switches the active child.
func (s *Dynamic) SetMode(mode int) error {
	if mode < 0 || mode >= len(s.children) {
		return &ErrInvalidMode{Mode: mode, Len: len(s.children)}
	}
	s.mode = mode
	return nil
}

func (s *Dynamic) Select(uids []uint64, scores map[uint64]float64, n int) []uint64 {
	return s.children[s.mode].Select(uids, scores, n)
}
