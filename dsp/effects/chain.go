package effects

import "fmt"

// Chain runs processors in series on the same buffers.
type Chain struct {
	stages []Processor
}

// NewChain returns a chain of the given stages. Nil stages are skipped.
func NewChain(stages ...Processor) *Chain {
	c := &Chain{}
	for _, p := range stages {
		c.Append(p)
	}
	return c
}

// Append adds p at the end of the chain.
func (c *Chain) Append(p Processor) {
	if p == nil {
		return
	}
	c.stages = append(c.stages, p)
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Stage returns the i-th stage.
func (c *Chain) Stage(i int) Processor {
	return c.stages[i]
}

// ProcessBlock runs every stage in order.
func (c *Chain) ProcessBlock(left, right []float32) {
	for _, p := range c.stages {
		p.ProcessBlock(left, right)
	}
}

// Reset resets every stage.
func (c *Chain) Reset() {
	for _, p := range c.stages {
		p.Reset()
	}
}

// SetSampleRate forwards sampleRate to every stage and stops at the first
// failure.
func (c *Chain) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}
	for i, p := range c.stages {
		if err := p.SetSampleRate(sampleRate); err != nil {
			return fmt.Errorf("chain stage %d: %w", i, err)
		}
	}
	return nil
}
