package enum

// ── Order lifecycle states ──

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCooking   = "COOKING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// ── Order intake channels ──

const (
	OrderSourceWhatsApp = "WHATSAPP"
	OrderSourcePhone    = "PHONE"
	OrderSourceInternal = "INTERNAL"
	OrderSourceWeb      = "WEB"
)

// ── Delivery types ──

const (
	DeliveryTypeMesa      = "MESA"
	DeliveryTypeDomicilio = "DOMICILIO"
	DeliveryTypeRecoger   = "RECOGER"
)

// ── Modifier kinds ──

const (
	ModifierKindAdditive    = "ADDITIVE"
	ModifierKindSubtractive = "SUBTRACTIVE"
	ModifierKindOption      = "OPTION"
)

// ── Staff roles ──

const (
	UserRoleAdmin    = "ADMIN"
	UserRoleMesero   = "MESERO"
	UserRoleCocinero = "COCINERO"
)
