package intake

// alias lists the raw keys that may carry one canonical attribute, in priority order.
// The first candidate with a non-empty value wins.
type alias struct {
	keys []string
	set  func(*PatientRecord, string)
}

var aliasTable = []alias{
	{keys: []string{"email", "emailAddress", "contactEmail"}, set: func(p *PatientRecord, v string) { p.Email = v }},
	{keys: []string{"phone", "phoneNumber", "contactPhone"}, set: func(p *PatientRecord, v string) { p.Phone = v }},
	{keys: []string{"dateOfBirth", "dob", "birthDate"}, set: func(p *PatientRecord, v string) { p.DateOfBirth = v }},
	{keys: []string{"gender", "sex"}, set: func(p *PatientRecord, v string) { p.Gender = v }},
	{keys: []string{"address", "street", "streetAddress"}, set: func(p *PatientRecord, v string) { p.Street = v }},
	{keys: []string{"city"}, set: func(p *PatientRecord, v string) { p.City = v }},
	{keys: []string{"province", "state"}, set: func(p *PatientRecord, v string) { p.Province = v }},
	{keys: []string{"postalCode", "zipCode", "postal_code"}, set: func(p *PatientRecord, v string) { p.PostalCode = v }},
	{keys: []string{"country"}, set: func(p *PatientRecord, v string) { p.Country = v }},
	{keys: []string{"height"}, set: func(p *PatientRecord, v string) { p.Height = v }},
	{keys: []string{"weight"}, set: func(p *PatientRecord, v string) { p.Weight = v }},
	{keys: []string{"deliveryMethod"}, set: func(p *PatientRecord, v string) { p.DeliveryMethod = v }},
	{keys: medicationKeys, set: func(p *PatientRecord, v string) { p.MedicationRaw = v }},
}

var (
	firstNameKeys  = []string{"firstName", "first_name"}
	lastNameKeys   = []string{"lastName", "last_name"}
	fullNameKeys   = []string{"fullName", "name", "patientName"}
	medicationKeys = []string{"preferredMedication", "selectedMedication", "medication", "medicationChoice", "activeIngredient", "sublingual_form"}
	bmiKeys        = []string{"bmi", "BMI"}
	idUploadKey    = "idUpload"
)
