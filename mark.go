// SPDX-License-Identifier: Apache-2.0

package scgc

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

type collectResult struct {
	marked     int
	freed      int
	freedBytes int
	passes     int
}

// collect runs one full, uninterruptible mark-and-sweep pass.
func (c *Collector) collect(ctx context.Context, spans [][]byte) collectResult {
	_, span := c.cfg.tracer.Start(ctx, "scgc.collect")
	defer span.End()

	c.cfg.logger.Info("collection started",
		"records", c.table.len(),
		"root_spans", len(spans),
	)

	c.unmark()
	for _, s := range spans {
		c.scan(s)
	}
	res := c.mark()
	res.freed, res.freedBytes = c.sweep()
	c.collections++

	span.SetAttributes(
		attribute.Int("scgc.records", c.table.len()),
		attribute.Int("scgc.marked", res.marked),
		attribute.Int("scgc.freed", res.freed),
		attribute.Int("scgc.freed_bytes", res.freedBytes),
		attribute.Int("scgc.passes", res.passes),
	)
	c.cfg.logger.Info("collection finished",
		"marked", res.marked,
		"freed", res.freed,
		"freed_bytes", res.freedBytes,
		"passes", res.passes,
		"live_bytes", c.live,
	)
	return res
}

func (c *Collector) unmark() {
	for i := range c.table.records {
		r := &c.table.records[i]
		if r.Status != Deallocated {
			r.Status = Unknown
		}
	}
}

// mark promotes Touched records to Referred and scans their blocks, pass after
// pass, until a pass finds nothing left to promote.
func (c *Collector) mark() collectResult {
	var res collectResult
	for {
		res.passes++
		progressed := false
		for i := range c.table.records {
			r := &c.table.records[i]
			if r.Status != Touched {
				continue
			}
			r.Status = Referred
			res.marked++
			progressed = true
			c.scan(c.region.bytes(r.Addr, r.Size, r.Size))
		}
		if !progressed {
			return res
		}
	}
}

// scan treats every word of b, at the configured stride, as a possible
// address and touches the block it points into.
func (c *Collector) scan(b []byte) {
	step := int(c.cfg.stride)
	for off := 0; off+WordSize <= len(b); off += step {
		c.touch(loadWord(b[off:]))
	}
}

func (c *Collector) touch(a Addr) {
	if !c.region.contains(a) {
		return
	}
	i := c.table.find(a)
	if i < 0 {
		return
	}
	if r := &c.table.records[i]; r.Status == Unknown {
		r.Status = Touched
		c.cfg.logger.Debug("touched block", "addr", r.Addr, "via", a)
	}
}

// sweep reclaims every record that is still Unknown.
func (c *Collector) sweep() (freed, freedBytes int) {
	for i := range c.table.records {
		r := &c.table.records[i]
		if r.Status != Unknown {
			continue
		}
		c.table.release(i)
		if c.cfg.clearOnFree {
			c.region.clear(r.Addr, r.Size)
		}
		freed++
		freedBytes += r.Requested
		c.cfg.logger.Debug("deallocated block", "addr", r.Addr, "size", r.Size)
	}
	c.live -= freedBytes
	return freed, freedBytes
}
