package chatbot

// QuickReply is a suggested follow-up the client renders as a button.
type QuickReply struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// rule matches a set of keywords to either canned responses or a dynamic
// intent resolved against live data.
type rule struct {
	keywords     []string
	responses    []string
	intent       string
	quickReplies []QuickReply
}

var menuReply = QuickReply{Label: "Menu", Message: "Show me the menu"}
var specialsReply = QuickReply{Label: "Specials", Message: "What are today's specials?"}
var ordersReply = QuickReply{Label: "My Orders", Message: "Where is my order?"}
var walletReply = QuickReply{Label: "Wallet", Message: "What's my balance?"}
var popularReply = QuickReply{Label: "Popular", Message: "What is popular?"}

var rules = []rule{
	{
		keywords: []string{"hi", "hello", "hey", "greetings", "sup", "hii", "helo", "namaste"},
		responses: []string{
			"Hello! Welcome to CampusBites. How can I help you today?",
			"Hi there! Ready to order something delicious?",
			"Hey! How can I assist you with your order?",
		},
		intent:       "greeting",
		quickReplies: []QuickReply{menuReply, specialsReply, ordersReply, walletReply},
	},
	{
		keywords: []string{"i am hungry", "im hungry", "hungry", "starving", "famished"},
		responses: []string{
			"Hungry? Check out our specials or grab a quick snack from the menu!",
			"Starving? We've got you covered. Check out the popular section.",
		},
		intent:       "menu_query",
		quickReplies: []QuickReply{specialsReply, popularReply},
	},
	{
		keywords: []string{"menu", "food", "items", "list", "options", "available", "what do you have", "what do you serve"},
		intent:   "menu_overview",
	},
	{
		keywords: []string{"timing", "open", "close", "hours", "schedule", "working hours"},
		responses: []string{
			"Canteen timings:\nMon-Fri: 8 AM - 6 PM\nSaturday: 9 AM - 3 PM\nSunday: Closed",
			"We are open Mon-Sat. Mon-Fri: 8-6, Sat: 9-3.",
		},
		intent:       "timing_query",
		quickReplies: []QuickReply{menuReply},
	},
	{
		keywords: []string{"order", "how to order", "process", "place order"},
		responses: []string{
			"To order: browse the menu, add items to your cart, checkout and pay.",
			"Ordering is easy! Just add items to your cart and checkout.",
		},
		intent:       "order_help",
		quickReplies: []QuickReply{menuReply, ordersReply},
	},
	{
		keywords: []string{"payment", "pay", "upi", "cash", "wallet payment", "charges"},
		responses: []string{
			"We accept cash, UPI, online and wallet payments.",
			"You can pay via UPI, cash at counter, online checkout, or your CampusBites wallet.",
		},
		intent:       "payment_help",
		quickReplies: []QuickReply{walletReply, menuReply},
	},
	{
		keywords: []string{"special", "today", "offer", "deal", "discount", "todays special"},
		intent:   "special_query",
	},
	{
		keywords:     []string{"veg", "vegetarian", "vegan", "pure veg"},
		intent:       "veg_query",
		quickReplies: []QuickReply{menuReply},
	},
	{
		keywords:     []string{"non veg", "non-veg", "nonveg", "chicken", "egg", "meat", "fish"},
		intent:       "nonveg_query",
		quickReplies: []QuickReply{menuReply},
	},
	{
		keywords:     []string{"popular", "best", "recommend", "suggest", "trending", "top", "favorite"},
		intent:       "recommendation",
		quickReplies: []QuickReply{specialsReply},
	},
	{
		keywords: []string{"price", "cost", "expensive", "cheap", "budget", "how much", "rate"},
		intent:   "price_query",
	},
	{
		keywords: []string{"wait", "queue", "how long", "duration", "preparation"},
		responses: []string{
			"Preparation time depends on the item. Check the estimated wait time at checkout!",
			"Usually 10-15 mins, but you can see the live estimate at checkout.",
		},
		intent:       "wait_query",
		quickReplies: []QuickReply{ordersReply},
	},
	{
		keywords: []string{"cancel", "refund", "return"},
		responses: []string{
			"You can cancel pending or confirmed orders from My Orders. Wallet refunds are instant!",
			"Need to cancel? Go to My Orders. Orders already preparing cannot be cancelled.",
		},
		intent:       "cancel_query",
		quickReplies: []QuickReply{ordersReply, walletReply},
	},
	{
		keywords: []string{"track", "status", "where", "order status", "my order"},
		intent:   "track_query",
	},
	{
		keywords: []string{"token", "qr", "code", "pickup"},
		responses: []string{
			"Show your token number at the counter to pick up your order.",
			"Keep your token handy! It is on the order details page.",
		},
		intent:       "token_query",
		quickReplies: []QuickReply{ordersReply},
	},
	{
		keywords: []string{"location", "address", "place", "find", "where is canteen"},
		responses: []string{
			"Ground floor, Block A, near the library.",
			"Find us at Block A, ground floor.",
		},
		intent:       "location_query",
		quickReplies: []QuickReply{{Label: "Timings", Message: "When is canteen open?"}},
	},
	{
		keywords: []string{"contact", "call", "phone", "email", "manager", "complaint"},
		responses: []string{
			"Contact the manager at 9876543210 or help@campusbites.com.",
		},
		intent: "contact_query",
	},
	{
		keywords: []string{"allergy", "gluten", "dairy", "nut", "ingredients", "contain"},
		responses: []string{
			"Please check item descriptions or ask staff about allergies.",
		},
		intent: "allergy_query",
	},
	{
		keywords: []string{"thanks", "thank", "bye", "goodbye", "cya", "see you"},
		responses: []string{
			"You're welcome! Enjoy!",
			"Bye! See you soon!",
			"Happy to help!",
		},
		intent: "farewell",
	},
	{
		keywords: []string{"help", "what can you do", "features", "commands"},
		responses: []string{
			"I can help with:\n" +
				"Menu - browse items by category\n" +
				"Specials - today's special items\n" +
				"Popular - most ordered items\n" +
				"Budget - \"items under 50\"\n" +
				"Veg/Non-Veg - filter by diet\n" +
				"Orders - track your order status\n" +
				"Wallet - check your balance\n" +
				"Timings - canteen hours\n" +
				"Just type naturally, I understand typos too!",
		},
		intent:       "help",
		quickReplies: []QuickReply{menuReply, specialsReply, ordersReply, walletReply},
	},
	{
		keywords: []string{"category", "categories", "sections", "types"},
		intent:   "category_list",
	},
}

var fallbackResponses = []string{
	"I'm not sure about that. Try asking about the menu, specials, or orders!",
	"Hmm, I didn't get that. Try 'Help' to see what I can do!",
	"I can help with menu, orders, wallet, and canteen info. Type 'Help'!",
}

var fallbackReplies = []QuickReply{
	{Label: "Help", Message: "Help"},
	menuReply,
	specialsReply,
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"do": {}, "does": {}, "did": {}, "have": {}, "had": {}, "has": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "my": {}, "your": {}, "his": {}, "her": {}, "its": {}, "our": {},
	"what": {}, "which": {}, "who": {}, "this": {}, "that": {}, "these": {},
	"am": {}, "be": {}, "been": {}, "being": {}, "can": {}, "will": {},
	"would": {}, "could": {}, "show": {}, "tell": {}, "give": {}, "get": {},
	"want": {}, "need": {}, "please": {}, "pls": {}, "u": {}, "r": {}, "ur": {},
}
