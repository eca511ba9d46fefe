package models

import (
	"gorm.io/gorm"
)

// Виды привязки автора к докладу.
const (
	AuthorKindInternal  = "internal"  // Докладчик из внутреннего справочника
	AuthorKindPresenter = "presenter" // Внешний приглашённый докладчик
	AuthorKindFreeform  = "freeform"  // Имя/почта указаны прямо в записи
)

// Speaker — внутренний справочник докладчиков.
type Speaker struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Email       string `gorm:"uniqueIndex;not null"`
	Affiliation string
}

// Presenter — внешний приглашённый докладчик.
type Presenter struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Email       string `gorm:"not null"`
	Affiliation string
	Bio         string
}

// Author — привязка автора к докладу. Вместо цепочек nullable-полей по месту
// использования запись несёт явный тег Kind, а разрешение в плоский вид
// выполняется ровно один раз — методом Resolve.
type Author struct {
	gorm.Model
	PresentationID uint       `gorm:"index;not null"`
	Kind           string     `gorm:"not null"` // internal / presenter / freeform
	SpeakerID      *uint      `gorm:"index"`
	Speaker        *Speaker   `gorm:"foreignKey:SpeakerID"`
	PresenterID    *uint      `gorm:"index"`
	Presenter      *Presenter `gorm:"foreignKey:PresenterID"`
	Name           string     // Поля freeform-варианта
	Email          string
	Affiliation    string
}

// AuthorView — плоская проекция автора для ответов API.
type AuthorView struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation,omitempty"`
}

// Resolve приводит любой вид привязки к плоскому виду {имя, почта, аффилиация}.
// Для internal/presenter требуется предзагрузка соответствующей связи.
func (a *Author) Resolve() AuthorView {
	switch a.Kind {
	case AuthorKindInternal:
		if a.Speaker != nil {
			return AuthorView{Name: a.Speaker.Name, Email: a.Speaker.Email, Affiliation: a.Speaker.Affiliation}
		}
	case AuthorKindPresenter:
		if a.Presenter != nil {
			return AuthorView{Name: a.Presenter.Name, Email: a.Presenter.Email, Affiliation: a.Presenter.Affiliation}
		}
	}
	return AuthorView{Name: a.Name, Email: a.Email, Affiliation: a.Affiliation}
}
