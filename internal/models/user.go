// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserType distinguishes voters from election candidates.
type UserType string

const (
	UserTypeVoter     UserType = "voter"
	UserTypeCandidate UserType = "candidate"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	return t == UserTypeVoter || t == UserTypeCandidate
}

// Experience is one entry of a candidate's track record.
type Experience struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Period       string `json:"period,omitempty"`
	Description  string `json:"description,omitempty"`
}

// SocialLinks holds a candidate's public social profiles.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
}

// CandidateProfile carries the campaign fields that only candidates fill in.
type CandidateProfile struct {
	Faculty    string                              `json:"faculty,omitempty"`
	Position   string                              `json:"position,omitempty"`
	Proposal   string                              `gorm:"type:text" json:"proposal,omitempty"`
	Experience datatypes.JSONSlice[Experience]     `json:"experience,omitempty"`
	Social     datatypes.JSONType[SocialLinks]     `json:"social,omitempty"`
}

// User represents a platform account: a voter or a candidate.
// Accounts are never hard-deleted; IsActive gates access instead.
type User struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Email           string           `gorm:"unique;not null" json:"email"`
	Password        string           `gorm:"not null" json:"-"`
	FullName        string           `gorm:"not null" json:"full_name"`
	UserType        UserType         `gorm:"type:varchar(16);not null;default:voter;index" json:"user_type"`
	Bio             string           `gorm:"type:text" json:"bio,omitempty"`
	ProfileImageURL string           `json:"profile_image_url,omitempty"`
	Candidate       CandidateProfile `gorm:"embedded;embeddedPrefix:candidate_" json:"candidate,omitempty"`
	IsActive        bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// IsCandidate reports whether the user may publish campaign posts.
func (u *User) IsCandidate() bool {
	return u.UserType == UserTypeCandidate
}

// Faculty values of the university's schools, used by the candidate directory.
const (
	FacultyProductionEngineering = "ips"
	FacultyCivilEngineering      = "civil"
	FacultyProcessEngineering    = "procesos"
	FacultyMedicine              = "medicina"
	FacultyNursing               = "enfermeria"
	FacultyBiologicalSciences    = "biologicas"
	FacultyNaturalSciences       = "naturales"
	FacultySocialSciences        = "sociales"
	FacultyEducation             = "educacion"
	FacultyAccounting            = "contables"
	FacultyAdministration        = "administracion"
	FacultyLaw                   = "derecho"
	FacultyPsychology            = "psicologia"
	FacultyPhilosophy            = "filosofia"
	FacultyArchitecture          = "arquitectura"
)

// Elected positions a candidate can run for.
const (
	PositionRector                = "rector"
	PositionAcademicViceRector    = "vicerrector_academico"
	PositionResearchViceRector    = "vicerrector_investigacion"
	PositionDean                  = "decano"
	PositionViceDean              = "vicedecano"
	PositionSchoolDirector        = "director_escuela"
	PositionStudentRepresentative = "representante_estudiantil"
)

var faculties = map[string]struct{}{
	FacultyProductionEngineering: {},
	FacultyCivilEngineering:      {},
	FacultyProcessEngineering:    {},
	FacultyMedicine:              {},
	FacultyNursing:               {},
	FacultyBiologicalSciences:    {},
	FacultyNaturalSciences:       {},
	FacultySocialSciences:        {},
	FacultyEducation:             {},
	FacultyAccounting:            {},
	FacultyAdministration:        {},
	FacultyLaw:                   {},
	FacultyPsychology:            {},
	FacultyPhilosophy:            {},
	FacultyArchitecture:          {},
}

var positions = map[string]struct{}{
	PositionRector:                {},
	PositionAcademicViceRector:    {},
	PositionResearchViceRector:    {},
	PositionDean:                  {},
	PositionViceDean:              {},
	PositionSchoolDirector:        {},
	PositionStudentRepresentative: {},
}

// ValidFaculty reports whether f names a known faculty.
func ValidFaculty(f string) bool {
	_, ok := faculties[f]
	return ok
}

// ValidPosition reports whether p names a known elected position.
func ValidPosition(p string) bool {
	_, ok := positions[p]
	return ok
}
