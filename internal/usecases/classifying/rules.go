package classifying

// Family agrupa objetivos de campanha que compartilham a mesma regra de resultado
type Family string

const (
	FamilyLead         Family = "lead"
	FamilyMessaging    Family = "messaging"
	FamilyTraffic      Family = "traffic"
	FamilyEngagement   Family = "engagement"
	FamilyAwareness    Family = "awareness"
	FamilySales        Family = "sales"
	FamilyUnclassified Family = "unclassified"
)

const (
	ActionLead                  = "lead"
	ActionLeads                 = "leads"
	ActionPixelLead             = "offsite_conversion.fb_pixel_lead"
	ActionMessagingStarted1d    = "onsite_conversion.messaging_conversation_started_1d"
	ActionMessagingStarted7d    = "onsite_conversion.messaging_conversation_started_7d"
	ActionInstagramProfileVisit = "instagram_profile_visit"
	ActionLandingPageView       = "landing_page_view"
	ActionPostEngagement        = "post_engagement"
	ActionPageEngagement        = "page_engagement"
	ActionVideoView             = "video_view"
	ActionEstimatedAdRecallers  = "estimated_ad_recallers"
	ActionPurchase              = "purchase"
	ActionAddToCart             = "add_to_cart"
	ReachLabel                  = "reach"
)

// Rule define o que conta como "resultado" para uma família de objetivos
type Rule struct {
	// Accepts são os action_types aceitos, em ordem de prioridade
	Accepts []string
	// UseReach usa o alcance da linha (e não a lista de ações) quando > 0
	UseReach bool
	// Universal consulta UniversalFallback quando nada de Accepts está presente
	Universal bool
}

// Rules é a tabela de decisão. Exceções novas entram aqui, não no fluxo de controle.
var Rules = map[Family]Rule{
	FamilyLead: {
		Accepts: []string{ActionLead, ActionLeads, ActionPixelLead, ActionMessagingStarted7d, ActionMessagingStarted1d},
	},
	FamilyMessaging: {
		Accepts: []string{ActionMessagingStarted1d, ActionMessagingStarted7d},
	},
	FamilyTraffic: {
		Accepts: []string{ActionInstagramProfileVisit, ActionLandingPageView},
	},
	FamilyEngagement: {
		Accepts: []string{ActionPostEngagement, ActionPageEngagement, ActionVideoView},
	},
	FamilyAwareness: {
		Accepts:  []string{ActionEstimatedAdRecallers},
		UseReach: true,
	},
	FamilySales: {
		Accepts:   []string{ActionPurchase, ActionAddToCart},
		Universal: true,
	},
	FamilyUnclassified: {
		Universal: true,
	},
}

// UniversalFallback é consultado somente quando a regra da família permite
var UniversalFallback = []string{ActionLead, ActionLeads, ActionMessagingStarted7d, ActionPurchase}

// ObjectiveFamilies mapeia o objetivo (normalizado) da Graph API para a família
var ObjectiveFamilies = map[string]Family{
	"OUTCOME_LEADS":         FamilyLead,
	"LEAD_GENERATION":       FamilyLead,
	"MESSAGES":              FamilyMessaging,
	"OUTCOME_TRAFFIC":       FamilyTraffic,
	"LINK_CLICKS":           FamilyTraffic,
	"OUTCOME_ENGAGEMENT":    FamilyEngagement,
	"POST_ENGAGEMENT":       FamilyEngagement,
	"PAGE_LIKES":            FamilyEngagement,
	"VIDEO_VIEWS":           FamilyEngagement,
	"OUTCOME_AWARENESS":     FamilyAwareness,
	"BRAND_AWARENESS":       FamilyAwareness,
	"REACH":                 FamilyAwareness,
	"OUTCOME_SALES":         FamilySales,
	"CONVERSIONS":           FamilySales,
	"PRODUCT_CATALOG_SALES": FamilySales,
}

// MessagingKeywords identificam, pelo nome, campanhas de engajamento que na prática geram mensagens.
// A taxonomia de objetivos da Meta não separa esses casos; mantenha a lista curta e revisada.
var MessagingKeywords = []string{"message", "direct", "whatsapp", "chat", "msg"}

// NameOverrides lista as famílias cujo nome da campanha pode redirecionar para outra família
var NameOverrides = map[Family]struct {
	Keywords []string
	Target   Family
}{
	FamilyEngagement: {Keywords: MessagingKeywords, Target: FamilyMessaging},
}
