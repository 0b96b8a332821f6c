package lib

import "fmt"

// GenerateOrderNumber generates an order number in the format CV-XXXX
// where XXXX is a random 4-character alphanumeric string
func GenerateOrderNumber() string {
	return fmt.Sprintf("CV-%s", RandomAlnum(4))
}
