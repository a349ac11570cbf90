package dto

// LoginRequest entrada de POST /api/auth/login. El servicio es de solo
// lectura y opera con una única credencial de analista configurada por
// entorno; no hay registro de usuarios.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token JWT de portador.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
