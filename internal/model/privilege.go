package model

// Privilege represents a permission granted to roles
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "issuance:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Issuance"
}

const (
	PrivProductView    = "product:view"
	PrivProductCreate  = "product:create"
	PrivProductUpdate  = "product:update"
	PrivProductDelete  = "product:delete"
	PrivStockAdjust    = "stock:adjust"
	PrivCategoryView   = "category:view"
	PrivCategoryManage = "category:manage"
	PrivSupplierView   = "supplier:view"
	PrivSupplierManage = "supplier:manage"
	PrivIssuanceView   = "issuance:view"
	PrivIssuanceCreate = "issuance:create"
	PrivIssuanceDelete = "issuance:delete"
	PrivUserView       = "user:view"
	PrivUserManage     = "user:manage"
	PrivDashboardView  = "dashboard:view"
)

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Product management
	{Code: PrivProductView, Name: "View Product"},
	{Code: PrivProductCreate, Name: "Create Product"},
	{Code: PrivProductUpdate, Name: "Update Product"},
	{Code: PrivProductDelete, Name: "Delete Product"},
	{Code: PrivStockAdjust, Name: "Adjust Stock"},
	// Catalog
	{Code: PrivCategoryView, Name: "View Category"},
	{Code: PrivCategoryManage, Name: "Manage Category"},
	{Code: PrivSupplierView, Name: "View Supplier"},
	{Code: PrivSupplierManage, Name: "Manage Supplier"},
	// Issuance
	{Code: PrivIssuanceView, Name: "View Issuance"},
	{Code: PrivIssuanceCreate, Name: "Create Issuance"},
	{Code: PrivIssuanceDelete, Name: "Delete Issuance"},
	// User management
	{Code: PrivUserView, Name: "View User"},
	{Code: PrivUserManage, Name: "Manage User"},
	// Dashboard
	{Code: PrivDashboardView, Name: "View Dashboard"},
}
