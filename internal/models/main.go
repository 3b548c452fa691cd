// Package models defines the core data structures exchanged with the
// storefront API and held as client state. JSON tags follow the server's
// wire names, which are Spanish.
package models

// User represents a storefront account as embedded in the auth token
// and returned by the admin user endpoints.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// FirstName is the user's given name.
	FirstName string `json:"nombre"`
	// LastName is the user's family name.
	LastName string `json:"apellido"`
	// Email doubles as the login name.
	Email string `json:"correo"`
	// Phone is optional and may be empty.
	Phone string `json:"telefono,omitempty"`
	// Address is optional and may be empty.
	Address string `json:"direccion,omitempty"`
	// Country is optional and may be empty.
	Country string `json:"pais,omitempty"`
	// Role is one of RoleAdmin or RoleBuyer.
	Role string `json:"tipo_usuario"`
	// CreatedAt is the account creation timestamp as reported by the server.
	CreatedAt string `json:"fecha_creacion"`
}

// Roles the server issues in tokens and user records.
const (
	RoleAdmin = "admin"
	RoleBuyer = "comprador"
)

// Product is a catalog entry. Price arrives as a string on the wire and is
// parsed to a number only when a product enters the cart.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Price       string `json:"precio"`
	Category    string `json:"categoria"`
	Console     string `json:"consola"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imagen_url"`
}

// Product categories known to the catalog.
const (
	CategoryGame    = "Juego"
	CategoryConsole = "Consola"
	CategoryCard    = "Tarjeta"
	CategoryFigure  = "Figura"
)

// CartItem is one product's entry in the cart. It captures the product's
// name, price, and image at the time of adding; they are not re-synced with
// the catalog afterwards. JSON tags match the snapshot a browser client
// writes under the same storage key.
type CartItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"nombre"`
	UnitPrice float64 `json:"precio"`
	ImageURL  string  `json:"imagen_url"`
	Quantity  int     `json:"cantidad"`
}

// Cart is the full cart snapshot. Totals are derived from Items and
// recomputed on every mutation, never patched incrementally.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

// Order is one row of the admin order listing.
type Order struct {
	ID              string         `json:"id"`
	UserID          string         `json:"usuario_id"`
	Subtotal        float64        `json:"subtotal"`
	ShippingCost    float64        `json:"costo_envio"`
	Total           float64        `json:"total"`
	Status          string         `json:"estado"`
	ShippingMethod  string         `json:"metodo_envio"`
	ShippingAddress string         `json:"direccion_envio"`
	PlacedAt        string         `json:"fecha_pedido"`
	Customer        *OrderCustomer `json:"usuario,omitempty"`
}

// OrderCustomer is the buyer summary nested in order records.
type OrderCustomer struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
	Phone     string `json:"telefono"`
}

// OrderDetail is a full order including its line items.
type OrderDetail struct {
	Order
	Items []OrderItem `json:"detalles"`
}

// OrderItem is one line of an order as stored server-side.
type OrderItem struct {
	ID        int              `json:"id"`
	OrderID   string           `json:"pedido_id"`
	ProductID string           `json:"producto_id"`
	Quantity  int              `json:"cantidad"`
	UnitPrice float64          `json:"precio_unitario"`
	Product   OrderItemProduct `json:"producto"`
}

// OrderItemProduct is the product summary nested in an order line.
type OrderItemProduct struct {
	Name     string `json:"nombre"`
	Console  string `json:"consola"`
	Category string `json:"categoria"`
	ImageURL string `json:"imagen_url"`
}

// Order statuses the server recognizes.
const (
	StatusProcessing = "procesando"
	StatusShipped    = "enviado"
	StatusCompleted  = "completado"
	StatusCancelled  = "cancelado"
)

// Shipping methods accepted at checkout.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingPickup   = "pickup"
)

// OrderLine is one product/quantity pair of an order-creation payload.
type OrderLine struct {
	ProductID string `json:"producto_id"`
	Quantity  int    `json:"cantidad"`
}

// CreateOrderRequest is the payload for POST /pedidos.
type CreateOrderRequest struct {
	Products       []OrderLine `json:"productos"`
	ShippingMethod string      `json:"metodo_envio"`
}

// RegisterRequest carries the registration profile. Validation happens
// server-side.
type RegisterRequest struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
	Password  string `json:"password"`
	Phone     string `json:"telefono"`
	Address   string `json:"direccion"`
	Country   string `json:"pais"`
}

// APIResponse is the generic success/error envelope returned by mutating
// endpoints. A well-formed body with Success=false is a structured business
// failure, distinct from a transport error.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// AuthResponse is the login envelope; Token is present only on success.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

// ProductsResponse wraps the product listing.
type ProductsResponse struct {
	Records []Product `json:"records"`
}

// UsersResponse wraps the admin user listing.
type UsersResponse struct {
	Records []User `json:"records"`
}

// OrdersResponse wraps the admin order listing.
type OrdersResponse struct {
	Success bool    `json:"success"`
	Records []Order `json:"records"`
	Total   int     `json:"total,omitempty"`
}

// OrderDetailResponse wraps a single order detail.
type OrderDetailResponse struct {
	Success bool        `json:"success"`
	Order   OrderDetail `json:"pedido"`
}

// UploadResponse is returned by the product image upload endpoint.
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}
