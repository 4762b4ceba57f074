package entity

import "time"

// Cliente representa un cliente de la empresa.
// RUC es opcional pero único cuando existe; DV es el dígito verificador panameño.
type Cliente struct {
	ID        string
	Nombre    string
	RUC       string
	DV        string
	Telefono  string
	Email     string
	Direccion string
	Activo    bool
	CreatedAt time.Time
}
