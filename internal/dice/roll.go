package dice

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Roller produces a single die result between 1 and faces.
type Roller interface {
	Roll(faces int) int
}

// CryptoRoller draws uniformly from crypto/rand, or from Reader when set.
type CryptoRoller struct {
	Reader io.Reader
	// Err holds the first read error. Rolls after an error count as 1.
	Err error
}

func (c *CryptoRoller) Roll(faces int) int {
	if faces <= 0 {
		return 0
	}
	src := c.Reader
	if src == nil {
		src = rand.Reader
	}
	n, err := rand.Int(src, big.NewInt(int64(faces)))
	if err != nil {
		if c.Err == nil {
			c.Err = err
		}
		return 1
	}
	return int(n.Int64()) + 1
}

// QueueRoller replays a fixed sequence of results, then falls back to 1.
// Tests use it for deterministic rolls.
type QueueRoller struct {
	Results []int
}

func (q *QueueRoller) Roll(faces int) int {
	if len(q.Results) == 0 {
		return 1
	}
	v := q.Results[0]
	q.Results = q.Results[1:]
	return v
}

// RollResult contains the total alongside the raw rolls used.
type RollResult struct {
	Total    int
	RawRolls []int
	Modifier int
}

// Roll rolls every term of the expression with r. Negative terms subtract.
func (e *Expression) Roll(r Roller) RollResult {
	if r == nil {
		r = &CryptoRoller{}
	}
	res := RollResult{Modifier: e.Modifier}
	for _, t := range e.Terms {
		for i := 0; i < t.Count; i++ {
			v := r.Roll(int(t.Die))
			res.RawRolls = append(res.RawRolls, v)
			if t.Negative {
				res.Total -= v
			} else {
				res.Total += v
			}
		}
	}
	res.Total += e.Modifier
	return res
}
