package domain

import "strconv"

// FormatRupiah renders an amount of whole rupiah in the id-ID style used by
// the storefront UI, e.g. 15000 -> "Rp15.000". Amounts carry no fractional
// units, so no decimals are emitted.
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if neg {
		return "-Rp" + string(out)
	}
	return "Rp" + string(out)
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Menunggu Konfirmasi",
	OrderStatusConfirmed: "Dikonfirmasi",
	OrderStatusCooking:   "Sedang Diproses",
	OrderStatusReady:     "Siap Diambil",
	OrderStatusCompleted: "Selesai",
	OrderStatusCancelled: "Dibatalkan",
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending: "Menunggu Pembayaran",
	PaymentStatusPaid:    "Sudah Dibayar",
	PaymentStatusFailed:  "Pembayaran Gagal",
}

// OrderStatusLabel returns the Indonesian display label for a status,
// falling back to the raw value for statuses the storefront doesn't know.
func OrderStatusLabel(s OrderStatus) string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func PaymentStatusLabel(s PaymentStatus) string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}
