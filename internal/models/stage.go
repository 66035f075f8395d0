// ABOUTME: Stage enumerates the pipeline states for one summarization run
// ABOUTME: Transitions are strictly sequential with Failed reachable anywhere
package models

// Stage is the state of a pipeline run.
type Stage string

const (
	StageIdle             Stage = "IDLE"
	StageChunking         Stage = "CHUNKING"
	StageEmbedding        Stage = "EMBEDDING"
	StageClusterSelecting Stage = "CLUSTER_SELECTING"
	StageSummarizing      Stage = "SUMMARIZING"
	StageCombining        Stage = "COMBINING"
	StageDone             Stage = "DONE"
	StageFailed           Stage = "FAILED"
)

// Terminal reports whether the stage ends the run.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}
