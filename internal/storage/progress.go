package storage

import "sync"

// ProgressReader is handed to minio as PutObjectOptions.Progress: minio
// reads from it as many bytes as it has just uploaded.
type ProgressReader struct {
	mu       sync.Mutex
	total    int64
	uploaded int64
	last     int
	report   ProgressFunc
}

func NewProgressReader(total int64, report ProgressFunc) *ProgressReader {
	return &ProgressReader{total: total, last: -1, report: report}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.uploaded += int64(len(b))

	percentage := 100
	if p.total > 0 && p.uploaded < p.total {
		percentage = int(p.uploaded * 100 / p.total)
	}

	// only report changes
	if percentage != p.last {
		p.last = percentage
		p.report(percentage)
	}

	return len(b), nil
}
