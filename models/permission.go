package models

// Permission is a catalog entry: an opaque action code a Role can reference.
// The catalog is a closed set seeded at startup; role edits are validated
// against it so no role can hold a code the system never checks.
type Permission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"size:64;uniqueIndex" json:"code"`
	Name        string `gorm:"size:128" json:"name"`
	Description string `gorm:"size:255" json:"description"`
}

// Action codes checked by the services. Every mutating entry point names one.
const (
	PermCreateBooking      = "create_booking"
	PermViewBookings       = "view_bookings"
	PermCheckOutBooking    = "check_out_booking"
	PermCancelBooking      = "cancel_booking"
	PermViewFolio          = "view_folio"
	PermPostCharge         = "post_charge"
	PermPostPayment        = "post_payment"
	PermCreatePOSOrder     = "create_pos_order"
	PermViewPOSOrders      = "view_pos_orders"
	PermUpdatePOSOrder     = "update_pos_order"
	PermManageMenus        = "manage_menus"
	PermManageTaxes        = "manage_taxes"
	PermManageRooms        = "manage_rooms"
	PermManageRoomTypes    = "manage_room_types"
	PermViewGuests         = "view_guests"
	PermManageRoles        = "manage_roles"
	PermManageStaff        = "manage_staff"
	PermViewReports        = "view_reports"
	PermViewExpenses       = "view_expenses"
	PermCreateExpense      = "create_expense"
	PermManageSalaries     = "manage_salaries"
	PermViewMaintenance    = "view_maintenance"
	PermCreateMaintenance  = "create_maintenance"
	PermApproveMaintenance = "approve_maintenance"
	PermViewHousekeeping   = "view_housekeeping"
	PermCreateHousekeeping = "create_housekeeping"
	PermViewAuditLogs      = "view_audit_logs"
)

// PermissionCatalog enumerates every grantable action code with its label.
var PermissionCatalog = []Permission{
	{Code: PermCreateBooking, Name: "Create bookings and check guests in"},
	{Code: PermViewBookings, Name: "View bookings"},
	{Code: PermCheckOutBooking, Name: "Check guests out"},
	{Code: PermCancelBooking, Name: "Cancel bookings"},
	{Code: PermViewFolio, Name: "View guest folios"},
	{Code: PermPostCharge, Name: "Post folio charges"},
	{Code: PermPostPayment, Name: "Record folio payments"},
	{Code: PermCreatePOSOrder, Name: "Create POS orders"},
	{Code: PermViewPOSOrders, Name: "View POS orders"},
	{Code: PermUpdatePOSOrder, Name: "Update POS order status"},
	{Code: PermManageMenus, Name: "Manage POS menus"},
	{Code: PermManageTaxes, Name: "Manage taxes"},
	{Code: PermManageRooms, Name: "Manage rooms"},
	{Code: PermManageRoomTypes, Name: "Manage room types"},
	{Code: PermViewGuests, Name: "View and edit guest profiles"},
	{Code: PermManageRoles, Name: "Manage roles and permissions"},
	{Code: PermManageStaff, Name: "Manage staff accounts"},
	{Code: PermViewReports, Name: "View reports and dashboard"},
	{Code: PermViewExpenses, Name: "View expenses"},
	{Code: PermCreateExpense, Name: "Record expenses"},
	{Code: PermManageSalaries, Name: "Manage salaries"},
	{Code: PermViewMaintenance, Name: "View maintenance requests"},
	{Code: PermCreateMaintenance, Name: "Raise maintenance requests"},
	{Code: PermApproveMaintenance, Name: "Approve and close maintenance requests"},
	{Code: PermViewHousekeeping, Name: "View housekeeping requests"},
	{Code: PermCreateHousekeeping, Name: "Raise housekeeping requests"},
	{Code: PermViewAuditLogs, Name: "View audit logs"},
}

// IsKnownPermission reports whether code is part of the catalog.
func IsKnownPermission(code string) bool {
	for _, p := range PermissionCatalog {
		if p.Code == code {
			return true
		}
	}
	return false
}
