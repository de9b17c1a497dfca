package entity

import "time"

// SyncStatus estado de una corrida de sincronización.
type SyncStatus string

const (
	SyncRunning SyncStatus = "running"
	SyncSuccess SyncStatus = "success"
	SyncFailed  SyncStatus = "failed"
)

// SyncStage etapa del pipeline donde puede fallar una corrida.
type SyncStage string

const (
	StageFetch     SyncStage = "fetch"
	StageReconcile SyncStage = "reconcile"
	StageProject   SyncStage = "project"
)

// SyncRun corrida de sincronización: resultado, etapa fallida (si aplica) y
// conteo de advertencias de calidad de datos. Una corrida parcialmente limpia
// (productos con advertencias) termina en success con Warnings > 0.
type SyncRun struct {
	ID         string
	Status     SyncStatus
	Stage      SyncStage // última etapa alcanzada
	Products   int
	Warnings   int
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}
