package user

// RegisterRequest payload de registro.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required,notblank,max=100" example:"Ana Pérez"`
	Email    string `json:"email"    binding:"required,email,max=120"    example:"ana@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72"     example:"s3cret-pass"`
	Phone    string `json:"phone"    binding:"omitempty,max=20"          example:"+57 300 000 0000"`
	Address  string `json:"address"  binding:"omitempty,max=200"         example:"Calle 1 # 2-3"`
}

// LoginRequest payload de login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required"       example:"s3cret-pass"`
}

// UpdateProfileRequest payload de actualización del propio perfil.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name     *string `json:"name"     binding:"omitempty,notblank,max=100"`
	Phone    *string `json:"phone"    binding:"omitempty,max=20"`
	Address  *string `json:"address"  binding:"omitempty,max=200"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}
