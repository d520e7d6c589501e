package catalog

// Seed data for a fresh install: the six regions, their trips and the
// achievement ladder.

var seedRegions = []Region{
	{ID: "karabakh", Name: "Karabakh", Symbol: "karabakh", SymbolName: "Golden Horse",
		Description: "The legendary Karabakh horse, known for its golden sheen, represents the region's proud equestrian heritage.",
		ImageURL:    "https://images.unsplash.com/photo-1553284965-83fd3e82fa5a?q=80&w=2071"},
	{ID: "nakhchivan", Name: "Nakhchivan", Symbol: "nakhchivan", SymbolName: "Ancient Fortress",
		Description: "Home to the Momine Khatun Mausoleum and ancient fortifications representing centuries of excellence.",
		ImageURL:    "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?q=80&w=2084"},
	{ID: "shaki", Name: "Shaki", Symbol: "shaki", SymbolName: "Silk Road Caravan",
		Description: "A UNESCO World Heritage site on the historic Silk Road with magnificent Khan's Palace.",
		ImageURL:    "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?q=80&w=2070"},
	{ID: "gabala", Name: "Gabala", Symbol: "gabala", SymbolName: "Mountain Peak",
		Description: "Azerbaijan's premier outdoor destination with stunning alpine scenery and adventure facilities.",
		ImageURL:    "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?q=80&w=2070"},
	{ID: "ganja", Name: "Ganja", Symbol: "ganja", SymbolName: "Carpet Pattern",
		Description: "Famous for its vibrant carpet-weaving tradition, telling stories of artistic heritage.",
		ImageURL:    "https://images.unsplash.com/photo-1519681393784-d120267933ba?q=80&w=2070"},
	{ID: "gobustan", Name: "Gobustan", Symbol: "gobustan", SymbolName: "Petroglyphs",
		Description: "Ancient rock carvings dating back 40,000 years, a UNESCO site of earliest artistic expressions.",
		ImageURL:    "https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99?q=80&w=2070"},
}

var seedTrips = []Trip{
	{
		ID:          "shahdag-summit-expedition",
		Title:       "Shahdag Summit Expedition",
		Description: "Conquer the majestic Shahdag peak, one of the highest mountains in Azerbaijan. Experience breathtaking views of the Greater Caucasus range.",
		RegionID:    "gabala", Location: "Shahdag National Park, Gabala",
		Difficulty: "advanced", ActivityType: "climbing",
		Elevation: intp(4243), Distance: floatp(12.5), Duration: "3 days",
		MaxGroupSize: intp(8), Price: floatp(450),
		ImageURL: "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?q=80&w=2070",
		Featured: true, PointsReward: 500,
	},
	{
		ID:          "karabakh-heritage-trail",
		Title:       "Karabakh Heritage Trail",
		Description: "Trek through the historic trails of Karabakh, visiting ancient monasteries and experiencing the legendary horse breeding traditions.",
		RegionID:    "karabakh", Location: "Shusha Region, Karabakh",
		Difficulty: "intermediate", ActivityType: "hiking",
		Elevation: intp(1500), Distance: floatp(25), Duration: "4 days",
		MaxGroupSize: intp(12), Price: floatp(380),
		ImageURL: "https://images.unsplash.com/photo-1551632811-561732d1e306?q=80&w=2070",
		Featured: true, PointsReward: 400,
	},
	{
		ID:          "gobustan-rock-art-discovery",
		Title:       "Gobustan Rock Art Discovery",
		Description: "Explore the ancient petroglyphs and mud volcanoes of Gobustan, a UNESCO World Heritage site with 40,000 years of history.",
		RegionID:    "gobustan", Location: "Gobustan National Park",
		Difficulty: "beginner", ActivityType: "cultural",
		Elevation: intp(400), Distance: floatp(8), Duration: "1 day",
		MaxGroupSize: intp(20), Price: floatp(95),
		ImageURL: "https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99?q=80&w=2070",
		Featured: true, PointsReward: 150,
	},
	{
		ID:          "shaki-silk-road-adventure",
		Title:       "Shaki Silk Road Adventure",
		Description: "Follow the ancient Silk Road through Shaki, visiting the stunning Khan's Palace and exploring mountain villages.",
		RegionID:    "shaki", Location: "Shaki, Greater Caucasus",
		Difficulty: "intermediate", ActivityType: "cultural",
		Elevation: intp(2000), Distance: floatp(18), Duration: "2 days",
		MaxGroupSize: intp(15), Price: floatp(220),
		ImageURL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?q=80&w=2070",
		Featured: false, PointsReward: 250,
	},
	{
		ID:          "tufandag-ski-summit",
		Title:       "Tufandag Ski & Summit",
		Description: "Experience world-class skiing followed by a challenging summit attempt at Tufandag Mountain Resort.",
		RegionID:    "gabala", Location: "Tufandag, Gabala",
		Difficulty: "expert", ActivityType: "climbing",
		Elevation: intp(3900), Distance: floatp(15), Duration: "5 days",
		MaxGroupSize: intp(6), Price: floatp(680),
		ImageURL: "https://images.unsplash.com/photo-1454496522488-7a8e488e8606?q=80&w=2076",
		Featured: false, PointsReward: 600,
	},
	{
		ID:          "nakhchivan-ancient-wonders",
		Title:       "Nakhchivan Ancient Wonders",
		Description: "Discover the sacred Ashabi-Kahf Cave and the magnificent Momine Khatun Mausoleum in this spiritual journey.",
		RegionID:    "nakhchivan", Location: "Nakhchivan City",
		Difficulty: "beginner", ActivityType: "cultural",
		Elevation: intp(900), Distance: floatp(10), Duration: "2 days",
		MaxGroupSize: intp(18), Price: floatp(180),
		ImageURL: "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?q=80&w=2084",
		Featured: false, PointsReward: 200,
	},
	{
		ID:          "ganja-mountain-photography",
		Title:       "Ganja Mountain Photography Tour",
		Description: "Capture the stunning landscapes around Azerbaijan's second-largest city. Perfect for photography enthusiasts.",
		RegionID:    "ganja", Location: "Ganja Region",
		Difficulty: "beginner", ActivityType: "photography",
		Elevation: intp(1200), Distance: floatp(12), Duration: "2 days",
		MaxGroupSize: intp(10), Price: floatp(195),
		ImageURL: "https://images.unsplash.com/photo-1519681393784-d120267933ba?q=80&w=2070",
		Featured: false, PointsReward: 175,
	},
	{
		ID:          "caucasus-wildlife-safari",
		Title:       "Caucasus Wildlife Safari",
		Description: "Observe rare Caucasian wildlife including the endangered Caucasian leopard in their natural habitat.",
		RegionID:    "gabala", Location: "Shahdag National Park",
		Difficulty: "intermediate", ActivityType: "wildlife",
		Elevation: intp(2500), Distance: floatp(20), Duration: "3 days",
		MaxGroupSize: intp(8), Price: floatp(350),
		ImageURL: "https://images.unsplash.com/photo-1472396961693-142e6e269027?q=80&w=2052",
		Featured: false, PointsReward: 350,
	},
	{
		ID:          "alpine-camping-experience",
		Title:       "Alpine Camping Experience",
		Description: "Camp under the stars in the heart of the Caucasus Mountains. Experience true wilderness camping.",
		RegionID:    "gabala", Location: "Greater Caucasus Range",
		Difficulty: "intermediate", ActivityType: "camping",
		Elevation: intp(2800), Distance: floatp(15), Duration: "2 nights",
		MaxGroupSize: intp(10), Price: floatp(275),
		ImageURL: "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?q=80&w=2070",
		Featured: false, PointsReward: 300,
	},
	{
		ID:          "khinalig-village-trek",
		Title:       "Khinalig Village Trek",
		Description: "Trek to one of the highest and most ancient continuously inhabited settlements in Europe.",
		RegionID:    "gabala", Location: "Khinalig, Quba",
		Difficulty: "advanced", ActivityType: "hiking",
		Elevation: intp(2350), Distance: floatp(22), Duration: "3 days",
		MaxGroupSize: intp(12), Price: floatp(320),
		ImageURL: "https://images.unsplash.com/photo-1483728642387-6c3bdd6c93e5?q=80&w=2076",
		Featured: true, PointsReward: 400,
	},
}

var seedAchievements = []SeedAchievement{
	{ID: "golden-horse-rider", Name: "Golden Horse Rider", Description: "Complete your first trip in the Karabakh region",
		RegionID: "karabakh", Symbol: "karabakh", RequiredLevel: 1, RequiredTrips: 1, PointsRequired: 0, Tier: "bronze"},
	{ID: "karabakh-explorer", Name: "Karabakh Explorer", Description: "Complete 3 trips in the Karabakh region",
		RegionID: "karabakh", Symbol: "karabakh", RequiredLevel: 3, RequiredTrips: 3, PointsRequired: 500, Tier: "silver"},
	{ID: "karabakh-master", Name: "Karabakh Master", Description: "Complete 5 trips in Karabakh and earn 2000 points",
		RegionID: "karabakh", Symbol: "karabakh", RequiredLevel: 5, RequiredTrips: 5, PointsRequired: 2000, Tier: "gold"},
	{ID: "fortress-discoverer", Name: "Fortress Discoverer", Description: "Complete your first trip in the Nakhchivan region",
		RegionID: "nakhchivan", Symbol: "nakhchivan", RequiredLevel: 1, RequiredTrips: 1, PointsRequired: 0, Tier: "bronze"},
	{ID: "ancient-heritage-seeker", Name: "Ancient Heritage Seeker", Description: "Complete 3 trips in Nakhchivan",
		RegionID: "nakhchivan", Symbol: "nakhchivan", RequiredLevel: 3, RequiredTrips: 3, PointsRequired: 500, Tier: "silver"},
	{ID: "silk-road-traveler", Name: "Silk Road Traveler", Description: "Complete your first trip in the Shaki region",
		RegionID: "shaki", Symbol: "shaki", RequiredLevel: 1, RequiredTrips: 1, PointsRequired: 0, Tier: "bronze"},
	{ID: "caravan-master", Name: "Caravan Master", Description: "Complete 3 trips along the Silk Road in Shaki",
		RegionID: "shaki", Symbol: "shaki", RequiredLevel: 4, RequiredTrips: 3, PointsRequired: 800, Tier: "silver"},
	{ID: "peak-beginner", Name: "Peak Beginner", Description: "Complete your first mountain trip in Gabala",
		RegionID: "gabala", Symbol: "gabala", RequiredLevel: 1, RequiredTrips: 1, PointsRequired: 0, Tier: "bronze"},
	{ID: "summit-seeker", Name: "Summit Seeker", Description: "Complete 5 climbing trips in Gabala",
		RegionID: "gabala", Symbol: "gabala", RequiredLevel: 5, RequiredTrips: 5, PointsRequired: 1500, Tier: "silver"},
	{ID: "caucasus-champion", Name: "Caucasus Champion", Description: "Conquer all major peaks in Gabala region",
		RegionID: "gabala", Symbol: "gabala", RequiredLevel: 8, RequiredTrips: 10, PointsRequired: 5000, Tier: "gold"},
	{ID: "mountain-legend", Name: "Mountain Legend", Description: "Achieve master status in Gabala with 15 completed trips",
		RegionID: "gabala", Symbol: "gabala", RequiredLevel: 10, RequiredTrips: 15, PointsRequired: 10000, Tier: "platinum"},
	{ID: "carpet-artist", Name: "Carpet Artist", Description: "Complete your first cultural trip in Ganja",
		RegionID: "ganja", Symbol: "ganja", RequiredLevel: 1, RequiredTrips: 1, PointsRequired: 0, Tier: "bronze"},
	{ID: "cultural-ambassador", Name: "Cultural Ambassador", Description: "Complete 3 cultural experiences in Ganja",
		RegionID: "ganja", Symbol: "ganja", RequiredLevel: 3, RequiredTrips: 3, PointsRequired: 600, Tier: "silver"},
	{ID: "ancient-art-seeker", Name: "Ancient Art Seeker", Description: "Visit the Gobustan petroglyphs",
		RegionID: "gobustan", Symbol: "gobustan", RequiredLevel: 1, RequiredTrips: 1, PointsRequired: 0, Tier: "bronze"},
	{ID: "petroglyph-expert", Name: "Petroglyph Expert", Description: "Complete 3 explorations in Gobustan",
		RegionID: "gobustan", Symbol: "gobustan", RequiredLevel: 3, RequiredTrips: 3, PointsRequired: 500, Tier: "silver"},
	{ID: "history-guardian", Name: "History Guardian", Description: "Master the ancient history of Gobustan",
		RegionID: "gobustan", Symbol: "gobustan", RequiredLevel: 6, RequiredTrips: 5, PointsRequired: 2000, Tier: "gold"},
	{ID: "first-steps", Name: "First Steps", Description: "Complete your very first mountain adventure",
		Symbol: "general", RequiredLevel: 1, RequiredTrips: 1, PointsRequired: 0, Tier: "bronze"},
	{ID: "rising-adventurer", Name: "Rising Adventurer", Description: "Reach Level 5 and explore multiple regions",
		Symbol: "general", RequiredLevel: 5, RequiredTrips: 5, PointsRequired: 1000, Tier: "silver"},
	{ID: "azerbaijan-explorer", Name: "Azerbaijan Explorer", Description: "Visit all 6 regions of Azerbaijan",
		Symbol: "general", RequiredLevel: 8, RequiredTrips: 10, PointsRequired: 3000, Tier: "gold"},
	{ID: "grand-master-explorer", Name: "Grand Master Explorer", Description: "Achieve legendary status with maximum points",
		Symbol: "general", RequiredLevel: 10, RequiredTrips: 20, PointsRequired: 10000, Tier: "platinum"},
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }
