// SPDX-License-Identifier: Apache-2.0

package scgc

// Stats contains statistical information about a collector.
type Stats struct {
	Len         int     // Requested bytes held by in-use blocks
	Cap         int     // Arena capacity in bytes
	Peak        int     // Highest Len observed
	BumpBytes   int     // Bytes consumed by the bump cursor, including alignment padding
	RecordCount int     // Record slots ever created; never decreases
	RecordBytes int     // Arena bytes charged for the record table
	FreeRecords int     // Deallocated slots available for reuse
	Collections uint64  // Completed mark-and-sweep passes
	Utilization float64 // Ratio of Len to Cap (0.0-1.0)
}

// Stats returns a snapshot of collector statistics.
func (c *Collector) Stats() Stats {
	s := Stats{
		Len:         c.live,
		Cap:         c.Cap(),
		Peak:        c.peak,
		BumpBytes:   c.region.offset,
		RecordCount: c.table.len(),
		RecordBytes: c.table.bytes(),
		FreeRecords: int(c.table.free.GetCardinality()),
		Collections: c.collections,
	}
	if s.Cap > 0 {
		s.Utilization = float64(s.Len) / float64(s.Cap)
	}
	return s
}
