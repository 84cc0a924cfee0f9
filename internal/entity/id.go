package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Id prefixes, kept stable so stored documents remain recognizable
// across deployments.
const (
	IdPrefixImage          = "img"
	IdPrefixVision         = "vision"
	IdPrefixChat           = "chat"
	IdPrefixSustainability = "sustain"
	IdPrefixDashboard      = "dash"
)

// NewId returns "{prefix}_{uuid}". UUIDs replace the legacy
// epoch-millis+random scheme, which could collide under load.
func NewId(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}
