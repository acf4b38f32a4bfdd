package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/converter"
)

// ErrJobRunning 已有转换任务在执行（批处理串行，一次只跑一个）
var ErrJobRunning = errors.New("a conversion job is already running")

// Job 一次转换任务及其缓冲的进度事件
type Job struct {
	ID string

	mu     sync.Mutex
	events []converter.ProgressEvent
	report *converter.RunReport
	err    error
	done   bool
}

// append 作为协调器的 emit 回调缓冲事件
func (j *Job) append(ev converter.ProgressEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
}

// EventsAfter 返回 after 游标之后的事件与新的游标
func (j *Job) EventsAfter(after int) (events []converter.ProgressEvent, next int, done bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if after < 0 {
		after = 0
	}
	if after > len(j.events) {
		after = len(j.events)
	}
	events = append([]converter.ProgressEvent{}, j.events[after:]...)
	return events, len(j.events), j.done
}

// Status 任务当前状态
func (j *Job) Status() (report *converter.RunReport, done bool, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report, j.done, j.err
}

// JobManager 转换任务管理；同一时间只允许一个任务运行
type JobManager struct {
	coord *converter.Coordinator

	mu      sync.Mutex
	jobs    map[string]*Job
	running bool
}

// NewJobManager 创建任务管理器
func NewJobManager(coord *converter.Coordinator) *JobManager {
	return &JobManager{
		coord: coord,
		jobs:  make(map[string]*Job),
	}
}

// Start 启动转换任务；已有任务运行时返回 ErrJobRunning
func (m *JobManager) Start(opts converter.Options) (*Job, error) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil, ErrJobRunning
	}
	job := &Job{ID: uuid.New().String()}
	m.jobs[job.ID] = job
	m.running = true
	m.mu.Unlock()

	go func() {
		report, err := m.coord.Run(opts, job.append)

		job.mu.Lock()
		job.report = report
		job.err = err
		job.done = true
		job.mu.Unlock()

		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	return job, nil
}

// Get 按 ID 查找任务
func (m *JobManager) Get(id string) (*Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	return job, ok
}
