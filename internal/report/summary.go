// Package report aggregates derived hands into per-player HUD summaries.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/handstats/internal/derive"
)

// Ratio is a chance/done counter pair, such as hands dealt and hands with a
// voluntary preflop action.
type Ratio struct {
	Chances int
	Done    int
}

func (r *Ratio) add(chance, done bool) {
	if chance {
		r.Chances++
		if done {
			r.Done++
		}
	}
}

// Pct returns Done as a percentage of Chances, zero when there were none.
func (r Ratio) Pct() float64 {
	if r.Chances == 0 {
		return 0
	}
	return 100 * float64(r.Done) / float64(r.Chances)
}

// Player aggregates one player's hands. Money is in cents.
type Player struct {
	Name  string
	Hands int

	Net      int64
	sumSq    float64
	values   []float64
	Showdown int64
	NonSD    int64
	AllInEV  int64
	Rake     int64

	VPIP       Ratio
	PFR        Ratio
	ThreeBet   Ratio
	FoldTo3Bet Ratio
	Squeeze    Ratio
	Steal      Ratio
	CBet       Ratio
	FoldToCBet Ratio
	CheckRaise Ratio
	WTSD       Ratio // saw flop -> saw showdown
	WonAtSD    Ratio
}

func (p *Player) add(s *derive.PlayerStats) {
	p.Hands++
	net := float64(s.TotalProfit)
	p.Net += s.TotalProfit
	p.sumSq += net * net
	p.values = append(p.values, net)
	p.Showdown += s.ShowdownWinnings
	p.NonSD += s.NonShowdownWinnings
	p.AllInEV += s.AllInEV
	p.Rake += s.Rake

	p.VPIP.add(s.Street0VPIChance, s.Street0VPI)
	p.PFR.add(s.Street0AggrChance, s.Aggr[0])
	p.ThreeBet.add(s.ThreeBetChance, s.ThreeBetDone)
	p.FoldTo3Bet.add(s.FoldToThreeBetChance, s.FoldToThreeBetDone)
	p.Squeeze.add(s.SqueezeChance, s.SqueezeDone)
	p.Steal.add(s.StealChance, s.StealDone)
	p.CBet.add(s.CBChance[1], s.CBDone[1])
	p.FoldToCBet.add(s.FoldToCBChance[1], s.FoldToCBDone[1])
	p.CheckRaise.add(s.CheckCallRaiseChance[1], s.CheckRaiseDone[1])
	p.WTSD.add(s.Seen[1], s.SawShowdown)
	p.WonAtSD.add(s.SawShowdown, s.WonAtSD)
}

// Mean returns the average net result per hand in cents.
func (p *Player) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return float64(p.Net) / float64(p.Hands)
}

// Variance returns the sample variance of the per-hand results.
func (p *Player) Variance() float64 {
	if p.Hands < 2 {
		return 0
	}
	mean := p.Mean()
	return (p.sumSq - float64(p.Hands)*mean*mean) / float64(p.Hands-1)
}

// StdDev returns the sample standard deviation.
func (p *Player) StdDev() float64 {
	return math.Sqrt(p.Variance())
}

// ConfidenceInterval95 returns the 95% interval around Mean.
func (p *Player) ConfidenceInterval95() (float64, float64) {
	if p.Hands == 0 {
		return 0, 0
	}
	margin := 1.96 * p.StdDev() / math.Sqrt(float64(p.Hands))
	return p.Mean() - margin, p.Mean() + margin
}

// Percentile returns the per-hand result at p (0.0 to 1.0), interpolating
// between neighbours.
func (p *Player) Percentile(q float64) float64 {
	if len(p.values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), p.values...)
	sort.Float64s(sorted)

	index := q * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// Median returns the middle per-hand result.
func (p *Player) Median() float64 {
	return p.Percentile(0.5)
}

// Summary aggregates results across hands.
type Summary struct {
	Hands   int
	Pot     int64
	Rake    int64
	players map[string]*Player
}

// New creates an empty Summary.
func New() *Summary {
	return &Summary{players: make(map[string]*Player)}
}

// Add folds one derived hand into the summary.
func (s *Summary) Add(res *derive.Result) {
	s.Hands++
	s.Pot += res.Hand.TotalPot
	s.Rake += res.Hand.Rake
	for i := range res.Players {
		st := &res.Players[i]
		p, ok := s.players[st.Name]
		if !ok {
			p = &Player{Name: st.Name}
			s.players[st.Name] = p
		}
		p.add(st)
	}
}

// Player returns one player's aggregate.
func (s *Summary) Player(name string) (*Player, bool) {
	p, ok := s.players[name]
	return p, ok
}

// Players returns every player, most hands first, then by name.
func (s *Summary) Players() []*Player {
	out := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hands != out[j].Hands {
			return out[i].Hands > out[j].Hands
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Validate checks that every player's showdown and non-showdown winnings
// add up to their net result, and that net results and rake balance against
// each other across the table.
func (s *Summary) Validate() error {
	var net int64
	for _, p := range s.Players() {
		if p.Showdown+p.NonSD != p.Net {
			return fmt.Errorf("player %s: ledger mismatch: net=%d showdown=%d non-showdown=%d",
				p.Name, p.Net, p.Showdown, p.NonSD)
		}
		net += p.Net
	}
	if net+s.Rake != 0 {
		return fmt.Errorf("money not conserved: net=%d rake=%d", net, s.Rake)
	}
	return nil
}
