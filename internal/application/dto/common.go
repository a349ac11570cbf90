// Package dto define los contratos JSON de la API: consultas de filtro de
// entrada y cuerpos de respuesta de los reportes. Los montos viajan como
// decimal redondeado; la aritmética vive en el dominio, no aquí.
package dto

// ErrorResponse cuerpo de error HTTP. Message nunca transporta texto crudo
// de la fuente de datos.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
