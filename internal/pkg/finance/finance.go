package finance

import "math"

// Breakdown holds the derived profit figures for an agreement.
type Breakdown struct {
	GrossProfit  float64 `json:"gross_profit"`
	NetProfit    float64 `json:"net_profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// Derive computes gross profit, net profit and profit margin from the
// monetary inputs. Margin is a percentage of total payment and is 0
// when total payment is not positive.
func Derive(totalPayment, actualCost, agentCommission, otherExpenses float64) Breakdown {
	totalPayment = sanitize(totalPayment)
	actualCost = sanitize(actualCost)
	agentCommission = sanitize(agentCommission)
	otherExpenses = sanitize(otherExpenses)

	gross := totalPayment - actualCost
	net := gross - agentCommission - otherExpenses

	margin := 0.0
	if totalPayment > 0 {
		margin = net / totalPayment * 100
	}

	return Breakdown{
		GrossProfit:  gross,
		NetProfit:    net,
		ProfitMargin: margin,
	}
}

// PaymentDue computes the outstanding balance from the payment inputs.
func PaymentDue(totalPayment, paymentOwner, paymentTenant float64) float64 {
	return sanitize(totalPayment) - sanitize(paymentOwner) - sanitize(paymentTenant)
}

// sanitize coerces non-finite values to 0 so a bad input can never
// poison the derived fields.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
