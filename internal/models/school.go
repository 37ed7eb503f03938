package models

import "time"

// Class представляет учебный класс
type Class struct {
	ID        string    `json:"id"`         // UUID класса
	Grade     int       `json:"grade"`      // параллель (1-11)
	Name      string    `json:"name"`       // буква/название класса
	TeacherID *string   `json:"teacher_id"` // классный руководитель, может быть nil
	CreatedAt time.Time `json:"created_at"`
}

// Subject представляет учебный предмет
type Subject struct {
	ID        string    `json:"id"`      // UUID предмета
	NameRu    string    `json:"name_ru"` // название на русском
	NameUz    string    `json:"name_uz"` // название на узбекском
	CreatedAt time.Time `json:"created_at"`
}
