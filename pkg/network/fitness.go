package network

// TotalCash returns the sum of cash balances across all entities.
func (n *Network) TotalCash() float64 {
	var total float64
	for _, e := range n.entities {
		total += e.CashBalance
	}
	return total
}

// TotalTaxLiability returns the sum of recorded tax liabilities across
// all entities.
func (n *Network) TotalTaxLiability() float64 {
	var total float64
	for _, amount := range n.taxRecords {
		total += amount
	}
	return total
}

// Fitness is the optimization objective read by the external search
// driver: aggregate cash minus aggregate recorded tax liability.
func (n *Network) Fitness() float64 {
	return n.TotalCash() - n.TotalTaxLiability()
}
