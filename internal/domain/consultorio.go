package domain

// Consultorio is an examination room.
type Consultorio struct {
	ID        int    `json:"id"`
	Numero    string `json:"numero"`
	Ubicacion string `json:"ubicacion"`
	Tipo      string `json:"tipo"`
}
