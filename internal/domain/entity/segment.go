package entity

import "time"

// Segment es un sezionale: una serie de numeración independiente. Cada
// segmento define su máscara de numeración (ver paquete numbering); el
// consecutivo se reinicia por año dentro del segmento.
type Segment struct {
	ID          string
	Name        string
	Mask        string // ej. "FT-{counter}/{year}" o "{counter:5}"
	Predefined  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
