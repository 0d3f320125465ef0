// Package derive computes the per-hand, per-player and per-action
// statistics of a parsed poker hand.
package derive

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/handstats/internal/hand"
)

// Engine derives statistics from hands. It holds configuration only and is
// safe to reuse across hands, though not concurrently when the evaluator is
// not.
type Engine struct {
	logger        *log.Logger
	eval          Evaluator
	iterations    map[int]int
	rakeRoundDown bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithEvaluator enables pot awards, best-hand samples and all-in EV.
func WithEvaluator(eval Evaluator) Option {
	return func(e *Engine) { e.eval = eval }
}

// WithIterations overrides the forward-equity sample counts by street id.
func WithIterations(iterations map[int]int) Option {
	return func(e *Engine) {
		merged := make(map[int]int, len(DefaultIterations))
		for k, v := range DefaultIterations {
			merged[k] = v
		}
		for k, v := range iterations {
			merged[k] = v
		}
		e.iterations = merged
	}
}

// WithRakeRoundDown selects floor (true) or banker's rounding (false) for
// proportional rake splits.
func WithRakeRoundDown(down bool) Option {
	return func(e *Engine) { e.rakeRoundDown = down }
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:        log.New(io.Discard),
		iterations:    DefaultIterations,
		rakeRoundDown: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// derivation is the working state for a single hand.
type derivation struct {
	*Engine
	h      *hand.Hand
	logger *log.Logger

	// seat-ordered names and their stats
	order   []string
	players map[string]*PlayerStats

	rec     HandRecord
	actions []ActionRecord
	pots    []PotRecord
	stove   []StoveRecord

	cat    Category
	catErr error
	// malformed is set by the resolver stages; the result is still returned.
	malformed *MalformedHandError
}

// Derive computes every statistic for h. Structural problems return a nil
// result. A *MalformedHandError comes back alongside a result whose pots and
// best-hand samples are missing.
func (e *Engine) Derive(h *hand.Hand) (*Result, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("hand %s: %w", h.HandID, err)
	}
	if len(h.HoleStreets) == 0 {
		return nil, fmt.Errorf("hand %s: %w", h.HandID, hand.ErrNoStreets)
	}

	d := &derivation{
		Engine:  e,
		h:       h,
		logger:  e.logger.With("hand", h.HandID),
		players: make(map[string]*PlayerStats, len(h.Players)),
	}
	seated := make([]hand.Player, len(h.Players))
	copy(seated, h.Players)
	sort.SliceStable(seated, func(i, j int) bool { return seated[i].Seat < seated[j].Seat })
	for _, p := range seated {
		stats := statsTemplate
		stats.Name = p.Name
		d.players[p.Name] = &stats
		d.order = append(d.order, p.Name)
	}
	d.cat, d.catErr = LookupCategory(h.GameType.Category)

	d.assembleHand()
	d.assemblePlayers()
	d.assembleActions()

	if e.eval != nil {
		switch {
		case d.catErr != nil:
			d.logger.Warn("Skipping pots and best hands", "err", d.catErr)
		case !d.resolvable():
		default:
			d.assembleStove()
			d.assemblePots()
		}
	}

	res := &Result{Hand: d.rec, Actions: d.actions, Pots: d.pots, Stove: d.stove}
	for _, name := range d.order {
		res.Players = append(res.Players, *d.players[name])
	}
	if d.malformed != nil {
		return res, d.malformed
	}
	return res, nil
}

func (d *derivation) fail(reason string, args ...any) {
	if d.malformed != nil {
		return
	}
	d.malformed = &MalformedHandError{
		HandID: d.h.HandID,
		Path:   d.h.Source,
		Reason: fmt.Sprintf(reason, args...),
	}
	d.logger.Warn("Malformed hand", "reason", d.malformed.Reason)
}

// streetActions returns the actions of ActionStreets[idx].
func (d *derivation) streetActions(idx int) []hand.Action {
	return d.h.StreetActions(idx)
}

// IsMalformed reports whether err carries a *MalformedHandError.
func IsMalformed(err error) bool {
	var m *MalformedHandError
	return errors.As(err, &m)
}
