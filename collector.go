package skema

// collector accumulates issues for one call in traversal order.
type collector struct {
	failFast bool
	issues   Issues
}

func newCollector(failFast bool) *collector { return &collector{failFast: failFast} }

// record appends it and reports whether traversal may continue.
func (c *collector) record(it Issue) bool {
	c.issues = append(c.issues, it)
	return !c.failFast
}

// stopped reports whether fail-fast mode has already seen an issue.
func (c *collector) stopped() bool { return c.failFast && len(c.issues) > 0 }

func (c *collector) count() int { return len(c.issues) }

// finish returns nil when nothing was recorded, otherwise the issues.
func (c *collector) finish() error {
	if len(c.issues) == 0 {
		return nil
	}
	return c.issues
}
