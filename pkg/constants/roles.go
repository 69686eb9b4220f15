package constants

// Role es el conjunto cerrado de roles del sistema. Las comparaciones por
// literal ("Administrador" == ...) del sistema anterior provocaban errores de
// tipeo, por eso solo se aceptan los valores de este enum.
type Role string

const (
	RoleAdministrator Role = "Administrador"
	RoleManager       Role = "Encargado"
	RoleTechnician    Role = "Tecnico"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleManager, RoleTechnician:
		return true
	}
	return false
}

// ParseRole normaliza una cadena a Role; devuelve false si no pertenece al
// conjunto cerrado.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// CanRequestDisposal indica si el rol puede iniciar una baja. El resultado de
// la solicitud (aprobada de inmediato o pendiente) depende del rol.
func (r Role) CanRequestDisposal() bool {
	return r == RoleAdministrator || r == RoleManager
}

// CanApproveDisposal indica si el rol puede resolver una baja pendiente.
func (r Role) CanApproveDisposal() bool {
	return r == RoleAdministrator
}
