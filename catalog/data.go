package catalog

// Built-in reference tables. Ids are stable: party rows persist them.
var games = []Game{
	{
		ID:   1,
		Name: "Overwatch",
		gamemodes: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Quick Play"},
			2: {ID: 2, Name: "Competitive"},
			3: {ID: 3, Name: "Arcade"},
		},
		roles: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Tank", IconURL: "/icons/ow/tank.svg"},
			2: {ID: 2, Name: "Damage", IconURL: "/icons/ow/damage.svg"},
			3: {ID: 3, Name: "Support", IconURL: "/icons/ow/support.svg"},
			4: {ID: 4, Name: "Flex", IconURL: "/icons/ow/flex.svg"},
		},
		requirements: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Gold rank or higher"},
			2: {ID: 2, Name: "Diamond rank or higher"},
			3: {ID: 3, Name: "Microphone required"},
		},
	},
	{
		ID:   2,
		Name: "Apex Legends",
		gamemodes: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Trios"},
			2: {ID: 2, Name: "Duos"},
			3: {ID: 3, Name: "Ranked Leagues"},
		},
		roles: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Assault", IconURL: "/icons/apex/assault.svg"},
			2: {ID: 2, Name: "Recon", IconURL: "/icons/apex/recon.svg"},
			3: {ID: 3, Name: "Support", IconURL: "/icons/apex/support.svg"},
		},
		requirements: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Platinum or higher"},
			2: {ID: 2, Name: "Level 50+"},
			3: {ID: 3, Name: "Microphone required"},
		},
	},
	{
		ID:   3,
		Name: "League of Legends",
		gamemodes: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Summoner's Rift"},
			2: {ID: 2, Name: "Ranked Flex"},
			3: {ID: 3, Name: "ARAM"},
		},
		roles: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Top", IconURL: "/icons/lol/top.svg"},
			2: {ID: 2, Name: "Jungle", IconURL: "/icons/lol/jungle.svg"},
			3: {ID: 3, Name: "Mid", IconURL: "/icons/lol/mid.svg"},
			4: {ID: 4, Name: "Bot", IconURL: "/icons/lol/bot.svg"},
			5: {ID: 5, Name: "Support", IconURL: "/icons/lol/support.svg"},
		},
		requirements: map[uint]DisplayInfo{
			1: {ID: 1, Name: "Gold or higher"},
			2: {ID: 2, Name: "Honor level 3+"},
			3: {ID: 3, Name: "Microphone required"},
		},
	},
}
