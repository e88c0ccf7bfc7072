package survey

var officerNames = map[string]string{
	"aosimen":        "Osimen Faith",
	"aayogu":         "Ayogu Peace",
	"aoluwatobi":     "Oluwatobi Akingbade",
	"aabiola":        "Abiola Oluwadamilola",
	"aedozie":        "Edozie Njoku",
	"aprecious":      "Precious Ema",
	"agbolahan":      "Gbolahan Oguniyi",
	"aahmed2":        "Ajayi Ahmed",
	"aadebisi":       "Adebisi Kabiru",
	"aogundehin":     "Ogundehin Deborah",
	"aabiola1":       "Abiola Makinde",
	"aayokanmi":      "Agba Ayokunmi",
	"adamilola2":     "Awotipe Damilola",
	"aoluwadamilare": "Akintola Oluwadamilare",
	"apatrick":       "Emmanuel Patrick",
	"omukaila":       "Olusanjo Mukaila",
	"sbolaji":        "Shodimu Bolaji",
	"ojamiu":         "Oyebanjo Jamiu",
	"ajemmanuel":     "Ajumobi Emmanuel",
	"foluwafisayo":   "Famoroti Oluwafisayo",
	"yakin":          "Yinusa Akin",
	"ysalaudeen":     "Yusuf Salaudeen",
	"shodimu":        "Shodimu Bolaji",
	"ajuliet2":       "Ugorchi Amadi",
	"alucky":         "Lucky Okwuonu",
}

// DisplayName returns the officer's full name, or the id when unknown.
func DisplayName(user string) string {
	if name, ok := officerNames[user]; ok {
		return name
	}
	return user
}
