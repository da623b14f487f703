package order

// Locale selects the language of status labels.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// Badge is the visual treatment of a status. The status -> badge mapping is
// one-to-one and shared by every dashboard.
type Badge struct {
	Labels map[Locale]string
	Color  string
}

// Label returns the label for locale, falling back to English.
func (b Badge) Label(locale Locale) string {
	if l, ok := b.Labels[locale]; ok {
		return l
	}
	return b.Labels[LocaleEnglish]
}

func getBadges() map[Status]Badge {
	return map[Status]Badge{
		PendingRestaurantAcceptance: {Color: "yellow", Labels: map[Locale]string{
			LocaleEnglish: "Awaiting restaurant", LocaleArabic: "في انتظار المطعم"}},
		Confirmed: {Color: "blue", Labels: map[Locale]string{
			LocaleEnglish: "Confirmed", LocaleArabic: "تم التأكيد"}},
		Preparing: {Color: "orange", Labels: map[Locale]string{
			LocaleEnglish: "Preparing", LocaleArabic: "قيد التحضير"}},
		ReadyForPickup: {Color: "purple", Labels: map[Locale]string{
			LocaleEnglish: "Ready for pickup", LocaleArabic: "جاهز للاستلام"}},
		AssignedToDriver: {Color: "indigo", Labels: map[Locale]string{
			LocaleEnglish: "Driver assigned", LocaleArabic: "تم تعيين السائق"}},
		PickedUp: {Color: "cyan", Labels: map[Locale]string{
			LocaleEnglish: "Picked up", LocaleArabic: "تم الاستلام"}},
		InTransit: {Color: "teal", Labels: map[Locale]string{
			LocaleEnglish: "On the way", LocaleArabic: "في الطريق"}},
		Delivered: {Color: "green", Labels: map[Locale]string{
			LocaleEnglish: "Delivered", LocaleArabic: "تم التوصيل"}},
		Cancelled: {Color: "red", Labels: map[Locale]string{
			LocaleEnglish: "Cancelled", LocaleArabic: "ملغي"}},
	}
}

// BadgeOf returns the badge of s. Unknown statuses get a gray "Unknown" badge.
func BadgeOf(s Status) Badge {
	if b, ok := getBadges()[s]; ok {
		return b
	}
	return Badge{Color: "gray", Labels: map[Locale]string{LocaleEnglish: "Unknown", LocaleArabic: "غير معروف"}}
}
