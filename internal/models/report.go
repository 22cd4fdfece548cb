package models

import "time"

// Статусы модерации жалоб.
const (
	ReportStatusPending  = 0
	ReportStatusAccepted = 1
	ReportStatusRejected = 2
)

// Действия модерации.
const (
	ModerationApprove = "aprobar"
	ModerationReject  = "rechazar"
	ModerationRemove  = "eliminar"
)

// ValidModerationActions список допустимых действий модерации.
var ValidModerationActions = map[string]struct{}{
	ModerationApprove: {},
	ModerationReject:  {},
	ModerationRemove:  {},
}

// Report описывает жалобу студента на публикацию.
type Report struct {
	ID              int64     `db:"id" json:"id_reporte"`
	Reason          string    `db:"reason" json:"motivo"`
	CreatedAt       time.Time `db:"created_at" json:"fecha"`
	Status          int       `db:"status" json:"estado"`
	AdministratorID *int64    `db:"administrator_id" json:"administrador"`
	StudentID       int64     `db:"student_id" json:"estudiante"`
	ListingID       int64     `db:"listing_id" json:"publicacion"`
}
