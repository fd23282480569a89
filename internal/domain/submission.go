package domain

import (
	"net/url"
	"strconv"
	"time"
)

// TimestampLayout is the server-local format of the first CSV column.
const TimestampLayout = "2006-01-02 15:04:05"

// Form keys posted by the landing page.
const (
	KeyName       = "nombre"
	KeyAlias      = "alias"
	KeyPlatform   = "plataforma"
	KeyChannel    = "canal"
	KeyCountry    = "pais"
	KeyExperience = "experiencia"
	KeySchedule   = "horario"
	KeyGame       = "juego"
	KeyGoal       = "objetivo"
	KeyEmail      = "correo"
)

// Form is the registration request as posted, before sanitization.
// Missing keys are empty strings.
type Form struct {
	Name       string
	Alias      string
	Platform   string
	Channel    string
	Country    string
	Experience string
	Schedule   string
	Game       string
	Goal       string
	Email      string
}

// FormFromValues builds a Form from a decoded form body.
func FormFromValues(v url.Values) Form {
	return Form{
		Name:       v.Get(KeyName),
		Alias:      v.Get(KeyAlias),
		Platform:   v.Get(KeyPlatform),
		Channel:    v.Get(KeyChannel),
		Country:    v.Get(KeyCountry),
		Experience: v.Get(KeyExperience),
		Schedule:   v.Get(KeySchedule),
		Game:       v.Get(KeyGame),
		Goal:       v.Get(KeyGoal),
		Email:      v.Get(KeyEmail),
	}
}

// Record is one sanitized submission, persisted as a single CSV line.
// Text fields hold HTML-escaped values; Email holds the filtered address.
type Record struct {
	Timestamp  time.Time
	Name       string `validate:"required"`
	Alias      string `validate:"required"`
	Platform   string
	Channel    string `validate:"required"`
	Country    string
	Experience int
	Schedule   string
	Game       string
	Goal       string
	Email      string `validate:"required,email"`
}

// NewRecord sanitizes every field of f and stamps the record with now.
func NewRecord(f Form, now time.Time) Record {
	return Record{
		Timestamp:  now,
		Name:       Clean(f.Name),
		Alias:      Clean(f.Alias),
		Platform:   Clean(f.Platform),
		Channel:    Clean(f.Channel),
		Country:    Clean(f.Country),
		Experience: LeadingInt(f.Experience),
		Schedule:   Clean(f.Schedule),
		Game:       Clean(f.Game),
		Goal:       Clean(f.Goal),
		Email:      SanitizeEmail(f.Email),
	}
}

// Fields returns the 11 persisted columns in storage order.
func (r Record) Fields() []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		r.Name,
		r.Alias,
		r.Platform,
		r.Channel,
		r.Country,
		strconv.Itoa(r.Experience),
		r.Schedule,
		r.Game,
		r.Goal,
		r.Email,
	}
}
