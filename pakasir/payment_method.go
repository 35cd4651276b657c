package pakasir

// PaymentMethod selects the settlement channel for a transaction.
type PaymentMethod string

const (
	PaymentMethodQRIS         PaymentMethod = "qris"
	PaymentMethodBNIVA        PaymentMethod = "bni_va"
	PaymentMethodBRIVA        PaymentMethod = "bri_va"
	PaymentMethodCIMBNiagaVA  PaymentMethod = "cimb_niaga_va"
	PaymentMethodSampoernaVA  PaymentMethod = "sampoerna_va"
	PaymentMethodBNCVA        PaymentMethod = "bnc_va"
	PaymentMethodMaybankVA    PaymentMethod = "maybank_va"
	PaymentMethodPermataVA    PaymentMethod = "permata_va"
	PaymentMethodATMBersamaVA PaymentMethod = "atm_bersama_va"
	PaymentMethodArthaGrahaVA PaymentMethod = "artha_graha_va"
	PaymentMethodPaypal       PaymentMethod = "paypal"
)

// AllPaymentMethods returns every supported method in a fixed order.
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodQRIS,
		PaymentMethodBNIVA,
		PaymentMethodBRIVA,
		PaymentMethodCIMBNiagaVA,
		PaymentMethodSampoernaVA,
		PaymentMethodBNCVA,
		PaymentMethodMaybankVA,
		PaymentMethodPermataVA,
		PaymentMethodATMBersamaVA,
		PaymentMethodArthaGrahaVA,
		PaymentMethodPaypal,
	}
}

// IsValidPaymentMethod reports whether method is one of AllPaymentMethods.
// The comparison is case-sensitive.
func IsValidPaymentMethod(method string) bool {
	for _, m := range AllPaymentMethods() {
		if string(m) == method {
			return true
		}
	}
	return false
}

func (m PaymentMethod) IsValid() bool {
	return IsValidPaymentMethod(string(m))
}
