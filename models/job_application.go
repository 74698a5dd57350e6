package models

import "time"

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// JobApplication carries a unique index on (job_post_id, applicant_id) so the
// database, not the advisory pre-check, is what ultimately rejects duplicates.
type JobApplication struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobPostID   uint      `gorm:"not null;index;uniqueIndex:idx_job_applicant" json:"job_post_id"`
	JobPost     JobPost   `gorm:"foreignKey:JobPostID" json:"job_post,omitempty"`
	ApplicantID uint      `gorm:"not null;index;uniqueIndex:idx_job_applicant" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	CoverLetter string    `gorm:"type:text" json:"cover_letter,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AppliedAt   time.Time `gorm:"not null;autoCreateTime" json:"applied_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func ValidApplicationStatus(status string) bool {
	switch status {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}
