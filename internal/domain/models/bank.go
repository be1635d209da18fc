package models

// Bank counts coins by denomination. It describes both the machine's change
// reserve and the change handed back from a purchase.
type Bank struct {
	Quarters int `json:"quarters" yaml:"quarters"`
	Dimes    int `json:"dimes" yaml:"dimes"`
	Nickles  int `json:"nickles" yaml:"nickles"`
	Pennies  int `json:"pennies" yaml:"pennies"`
}

func (b Bank) Add(o Bank) Bank {
	return Bank{
		Quarters: b.Quarters + o.Quarters,
		Dimes:    b.Dimes + o.Dimes,
		Nickles:  b.Nickles + o.Nickles,
		Pennies:  b.Pennies + o.Pennies,
	}
}

func (b Bank) Sub(o Bank) Bank {
	return Bank{
		Quarters: b.Quarters - o.Quarters,
		Dimes:    b.Dimes - o.Dimes,
		Nickles:  b.Nickles - o.Nickles,
		Pennies:  b.Pennies - o.Pennies,
	}
}

func (b Bank) IsNegative() bool {
	return b.Quarters < 0 || b.Dimes < 0 || b.Nickles < 0 || b.Pennies < 0
}
