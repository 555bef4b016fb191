package entity

// Roles válidos en el token emitido por el proveedor de sesión.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperario   = "operario"
)
