// Package worker runs analyses requested over AMQP. Jobs arrive on a durable queue, resumes
// are downloaded from S3-compatible storage and progress is published to a topic exchange.
package worker

import (
	"fmt"
	"time"

	"github.com/jonathan/hiresense/internal/types"
)

// Broker names
const (
	QueueName         = "analysis_requests"
	UpdatesExchange   = "analysis_updates"
	RoutingKeyPattern = "analysis.%s"
)

// Job statuses published to UpdatesExchange
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is one queued analysis request
type Job struct {
	ID              string `json:"id"`
	CareerGoal      string `json:"career_goal"`
	SkillsText      string `json:"skills_text,omitempty"`
	ResumeText      string `json:"resume_text,omitempty"`
	ResumeObjectKey string `json:"resume_object_key,omitempty"`
	ResumeFilename  string `json:"resume_filename,omitempty"`
}

// Request returns the analysis request carried by the job, without any downloaded resume
func (j Job) Request() types.AnalysisRequest {
	return types.AnalysisRequest{
		CareerGoal: j.CareerGoal,
		SkillsText: j.SkillsText,
		ResumeText: j.ResumeText,
	}
}

// Update is a status message for one job
type Update struct {
	AnalysisID   string    `json:"analysis_id"`
	Status       string    `json:"status"`
	Message      string    `json:"message"`
	Source       string    `json:"source,omitempty"`
	OverallScore int       `json:"overall_score,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// RoutingKey returns the topic routing key for an analysis
func RoutingKey(analysisID string) string {
	return fmt.Sprintf(RoutingKeyPattern, analysisID)
}
