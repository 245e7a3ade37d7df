package addendum

import (
	"fmt"
	"strconv"
	"strings"
)

// Russian cardinal numbers for the agreement text. Thousands are
// feminine ("одна тысяча"), everything else masculine.

var unitsMasculine = [...]string{
	"", "один", "два", "три", "четыре", "пять",
	"шесть", "семь", "восемь", "девять",
}

var unitsFeminine = [...]string{
	"", "одна", "две", "три", "четыре", "пять",
	"шесть", "семь", "восемь", "девять",
}

var teens = [...]string{
	"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
	"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать",
}

var tens = [...]string{
	"", "", "двадцать", "тридцать", "сорок", "пятьдесят",
	"шестьдесят", "семьдесят", "восемьдесят", "девяносто",
}

var hundreds = [...]string{
	"", "сто", "двести", "триста", "четыреста", "пятьсот",
	"шестьсот", "семьсот", "восемьсот", "девятьсот",
}

// tripleInWords spells a number from 1 to 999.
func tripleInWords(n int, feminine bool) []string {
	var words []string
	if h := n / 100; h > 0 {
		words = append(words, hundreds[h])
	}
	rest := n % 100
	switch {
	case rest >= 10 && rest <= 19:
		words = append(words, teens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			words = append(words, tens[t])
		}
		if u := rest % 10; u > 0 {
			if feminine {
				words = append(words, unitsFeminine[u])
			} else {
				words = append(words, unitsMasculine[u])
			}
		}
	}
	return words
}

// pluralForm picks the Russian plural form for a count: one for 1,
// few for 2..4, many otherwise, with the teens always many.
func pluralForm(n int, one, few, many string) string {
	n = n % 100
	if n >= 11 && n <= 19 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

// AmountInWords spells a non-negative integer in Russian, the way the
// agreement text quotes quantities and prices. Supports values up to
// 999 999 999.
func AmountInWords(n int) string {
	if n == 0 {
		return "ноль"
	}
	var words []string
	if m := n / 1_000_000; m > 0 {
		words = append(words, tripleInWords(m, false)...)
		words = append(words, pluralForm(m, "миллион", "миллиона", "миллионов"))
	}
	if k := n / 1000 % 1000; k > 0 {
		words = append(words, tripleInWords(k, true)...)
		words = append(words, pluralForm(k, "тысяча", "тысячи", "тысяч"))
	}
	if rest := n % 1000; rest > 0 {
		words = append(words, tripleInWords(rest, false)...)
	}
	return strings.Join(words, " ")
}

// groupDigits formats an integer with spaces between thousand groups,
// for example 1250000 as "1 250 000".
func groupDigits(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	return groupDigits(n/1000) + fmt.Sprintf(" %03d", n%1000)
}
