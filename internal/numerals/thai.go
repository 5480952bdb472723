package numerals

const (
	thaiTen        = "สิบ"
	thaiTwenty     = "ยี่สิบ"
	thaiUnitOne    = "เอ็ด" // trailing 1 in compound numbers
	thaiOneHundred = "หนึ่งร้อย"
)

var thaiUnits = [...]string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}

// Thai returns the Thai cardinal for n, applying the usual contractions:
// bare สิบ for ten, ยี่สิบ for the twenties and เอ็ด for a trailing one.
func Thai(n int) (string, error) {
	if err := validate(n); err != nil {
		return "", err
	}

	switch {
	case n == 100:
		return thaiOneHundred, nil
	case n < 10:
		return thaiUnits[n], nil
	case n == 10:
		return thaiTen, nil
	}

	return thaiTensPrefix(n/10) + thaiUnitsSuffix(n%10), nil
}

// MustThai is like Thai but panics on out-of-range input.
func MustThai(n int) string {
	w, err := Thai(n)
	if err != nil {
		panic(err)
	}
	return w
}

func thaiTensPrefix(t int) string {
	switch t {
	case 1:
		return thaiTen
	case 2:
		return thaiTwenty
	default:
		return thaiUnits[t] + thaiTen
	}
}

func thaiUnitsSuffix(u int) string {
	switch u {
	case 0:
		return ""
	case 1:
		return thaiUnitOne
	default:
		return thaiUnits[u]
	}
}
