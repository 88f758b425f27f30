package dto

// CreateUserRequest body para POST /api/users. Password viaja en claro y se
// hashea con bcrypt antes de persistir; nunca vuelve en respuestas.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin, contador, auxiliar
}

// UserListQuery filtros de GET /api/users.
type UserListQuery struct {
	PageRequest
	Role   string `query:"role"`
	Active string `query:"active"` // "true" | "false" | vacío
}

// UserResponse usuario en respuestas (sin hash).
type UserResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

// UserListResponse respuesta de GET /api/users.
type UserListResponse struct {
	Data []UserResponse `json:"data"`
	Meta PageResponse   `json:"meta"`
}
