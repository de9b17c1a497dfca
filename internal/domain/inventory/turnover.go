package inventory

import "github.com/shopspring/decimal"

// Turnover calcula la rotación como días de cobertura (servicio de dominio).
// Rotación = Stock / (Pedidos / DíasVentana); misma unidad que la ventana, no un porcentaje.
// Sin pedidos en la ventana la rotación es 0: no hay ritmo de venta que proyectar.
func Turnover(totalStock, totalOrders, lookbackDays int) decimal.Decimal {
	if totalOrders <= 0 || lookbackDays <= 0 {
		return decimal.Zero
	}
	ordersPerDay := decimal.NewFromInt(int64(totalOrders)).Div(decimal.NewFromInt(int64(lookbackDays)))
	return decimal.NewFromInt(int64(totalStock)).Div(ordersPerDay).Round(2)
}
