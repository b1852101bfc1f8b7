package output

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// JobOutput tracks the display state of one fetch job.
type JobOutput struct {
	ID          int
	Label       string
	Status      string // pending, active, success, warning, error
	Message     string
	Complete    bool
	Done        int64
	Total       int64
	StartTime   time.Time
	LastUpdated time.Time
	Err         error
}

// Manager renders per-job status lines for batch runs, redrawing in place
// while jobs progress.
type Manager struct {
	mu          sync.RWMutex
	jobs        map[int]*JobOutput
	numLines    int
	jobCount    int
	doneCh      chan struct{}
	displayWg   sync.WaitGroup
	displayTick time.Duration
}

func NewManager() *Manager {
	return &Manager{
		jobs:        make(map[int]*JobOutput),
		doneCh:      make(chan struct{}),
		displayTick: 300 * time.Millisecond,
	}
}

// Register adds a job line and returns its handle.
func (m *Manager) Register(label string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.jobCount
	m.jobCount++
	m.jobs[id] = &JobOutput{
		ID:        id,
		Label:     label,
		Status:    "pending",
		StartTime: time.Now(),
	}
	return id
}

func (m *Manager) SetMessage(id int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		j.Message = message
		j.LastUpdated = time.Now()
	}
}

func (m *Manager) SetStatus(id int, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		j.Status = status
		j.LastUpdated = time.Now()
	}
}

// SetProgress records download counts so the job line carries a bar.
func (m *Manager) SetProgress(id int, done, total int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		j.Done = done
		j.Total = total
		j.LastUpdated = time.Now()
	}
}

func (m *Manager) Complete(id int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		j.Status = "success"
		j.Message = message
		j.Complete = true
		j.LastUpdated = time.Now()
	}
}

func (m *Manager) ReportError(id int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.jobs[id]; ok {
		j.Status = "error"
		j.Err = err
		j.Message = err.Error()
		j.Complete = true
		j.LastUpdated = time.Now()
	}
}

func (m *Manager) statusIndicator(status string) string {
	switch status {
	case "success":
		return FSuccess(StyleSymbols["pass"])
	case "error":
		return FError(StyleSymbols["fail"])
	case "warning":
		return FWarning(StyleSymbols["warning"])
	default:
		return pendingStyle.Render(StyleSymbols["pending"])
	}
}

func (m *Manager) render() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.numLines > 0 {
		fmt.Printf("\033[%dA\033[J", m.numLines)
	}
	ids := make([]int, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	height := getTerminalHeight() - 2
	lines := 0
	for _, id := range ids {
		if lines >= height {
			break
		}
		j := m.jobs[id]
		elapsed := time.Since(j.StartTime).Round(time.Second)
		if j.Complete {
			elapsed = j.LastUpdated.Sub(j.StartTime).Round(time.Second)
		}
		var msg string
		switch j.Status {
		case "success":
			msg = successStyle.Render(j.Message)
		case "error":
			msg = errorStyle.Render(j.Message)
		case "warning":
			msg = warningStyle.Render(j.Message)
		default:
			msg = pendingStyle.Render(j.Message)
		}
		line := fmt.Sprintf("  %s %s %s %s", m.statusIndicator(j.Status), debugStyle.Render(elapsed.String()), j.Label, msg)
		if !j.Complete && j.Total > 0 {
			line += " " + PrintProgressBar(j.Done, j.Total, 20)
		}
		if w := getTerminalWidth(); len(line) > w && w > 4 {
			line = line[:w-1]
		}
		fmt.Println(line)
		lines++
	}
	m.numLines = lines
}

// StartDisplay begins redrawing the job table until StopDisplay is called.
func (m *Manager) StartDisplay() {
	m.displayWg.Add(1)
	go func() {
		defer m.displayWg.Done()
		ticker := time.NewTicker(m.displayTick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.render()
			case <-m.doneCh:
				m.render()
				return
			}
		}
	}()
}

func (m *Manager) StopDisplay() {
	close(m.doneCh)
	m.displayWg.Wait()
}

// ShowSummary prints the final per-job outcome plus any errors.
func (m *Manager) ShowSummary() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var failed []*JobOutput
	for _, j := range m.jobs {
		if j.Err != nil {
			failed = append(failed, j)
		}
	}
	fmt.Println()
	if len(failed) == 0 {
		PrintSuccess(fmt.Sprintf("All %d job(s) completed", len(m.jobs)))
		return
	}
	PrintError(fmt.Sprintf("%d of %d job(s) failed", len(failed), len(m.jobs)))
	for _, j := range failed {
		PrintDetail(fmt.Sprintf("  %s %s: %v", StyleSymbols["bullet"], j.Label, j.Err))
	}
}
