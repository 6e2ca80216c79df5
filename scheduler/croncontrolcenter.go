package scheduler

import "sync"

// ICronControlCenter gives a running task access to the JRun it is
// recording into. Apps compose their own implementation to thread in
// databases, HTTP clients, or other app-level context; see
// CronControlCenter for the minimal working default.
type ICronControlCenter interface {
	GetJRun() IJRun
}

// CronControlCenter is the minimal ICronControlCenter implementation used
// by RunJobPlanDefault.
type CronControlCenter struct {
	jrun IJRun

	mu sync.RWMutex
}

func (c *CronControlCenter) GetJRun() IJRun {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.jrun
}

func (c *CronControlCenter) SetJRun(jrun IJRun) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jrun = jrun
}
