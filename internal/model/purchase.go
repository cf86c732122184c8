package model

import "time"

// Customer is the buyer data collected by the checkout form.  Only the last
// four card digits are ever kept once a purchase is recorded; the CVC is
// never stored.
type Customer struct {
    Name       string
    Email      string
    Phone      string
    Document   string
    CardNumber string
    CardName   string
    CardExpiry string
    CardCVC    string
}

// Masked returns a copy safe to persist: card number reduced to its last
// four digits and the CVC removed.
func (c Customer) Masked() Customer {
    out := c
    out.CardCVC = ""
    digits := make([]byte, 0, len(c.CardNumber))
    for i := 0; i < len(c.CardNumber); i++ {
        if ch := c.CardNumber[i]; ch >= '0' && ch <= '9' {
            digits = append(digits, ch)
        }
    }
    if len(digits) > 4 {
        digits = digits[len(digits)-4:]
    }
    if len(digits) > 0 {
        out.CardNumber = "**** " + string(digits)
    } else {
        out.CardNumber = ""
    }
    return out
}

// Purchase is the record returned by a successful checkout submission.
//
// Fields:
//  ID       – opaque purchase identifier (uuid).
//  UserID   – authenticated buyer.
//  Items    – cart lines at submission time.
//  Total    – sum of the lines.
//  Date     – submission time (UTC).
//  Customer – masked customer data.
type Purchase struct {
    ID       string
    UserID   uint64
    Items    []CartItem
    Total    Money
    Date     time.Time
    Customer Customer
}
