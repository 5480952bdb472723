package numerals

var englishOnes = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var englishTens = [...]string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

// English returns the lowercase English cardinal for n.
// Compound numbers are joined with a single space, not a hyphen ("twenty one").
func English(n int) (string, error) {
	if err := validate(n); err != nil {
		return "", err
	}

	switch {
	case n < 20:
		return englishOnes[n], nil
	case n == 100:
		return "one hundred", nil
	}

	word := englishTens[n/10]
	if u := n % 10; u != 0 {
		word += " " + englishOnes[u]
	}

	return word, nil
}

// MustEnglish is like English but panics on out-of-range input.
func MustEnglish(n int) string {
	w, err := English(n)
	if err != nil {
		panic(err)
	}
	return w
}
