package api

// Class представляет учебный класс
type Class struct {
	ID        string  `json:"id"`
	Grade     int     `json:"grade"`     // параллель (1-11)
	Name      string  `json:"name"`      // буква/название класса
	TeacherID *string `json:"teacherId"` // классный руководитель, может отсутствовать
}

// CreateClassRequest представляет запрос на создание класса
type CreateClassRequest struct {
	Grade     int     `json:"grade"`
	Name      string  `json:"name"`
	TeacherID *string `json:"teacherId,omitempty"`
}

// Subject представляет учебный предмет с названиями на двух языках
type Subject struct {
	ID     string `json:"id"`
	NameRu string `json:"nameRu"` // название на русском
	NameUz string `json:"nameUz"` // название на узбекском
}

// SubjectRequest представляет запрос на создание или изменение предмета
type SubjectRequest struct {
	NameRu string `json:"nameRu"`
	NameUz string `json:"nameUz"`
}

// SuccessResponse представляет ответ на операции без возвращаемых данных
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	OK bool `json:"ok"`
}
