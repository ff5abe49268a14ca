package services_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/partyup/matchmaking_backend/catalog"
	"github.com/partyup/matchmaking_backend/models"
	"github.com/partyup/matchmaking_backend/services"
)

var _ = Describe("PartyService", func() {
	var (
		db      *gorm.DB
		hub     *fakeHub
		parties *services.PartyService
		owner   *models.User
	)

	BeforeEach(func() {
		db = openTestDB()
		hub = &fakeHub{}
		parties = &services.PartyService{
			DB:      db,
			Logger:  silentLogger(),
			Catalog: catalog.Load(),
			Hub:     hub,
		}
		owner = createUser(db)
	})

	draft := func() services.PartyDraft {
		return services.PartyDraft{
			GameID:      1,
			Title:       "LFG comp grind",
			Gamemode:    2,
			Description: "chill runs, mic preferred",
		}
	}

	twoSpots := func() []services.SpotDraft {
		return []services.SpotDraft{
			{Roles: []uint{1, 2}},
			{Roles: []uint{3}},
		}
	}

	Describe("CreateParty", func() {
		It("rejects a draft without a game or title", func() {
			_, err := parties.CreateParty(owner.ID, services.PartyDraft{Title: "x"}, twoSpots(), nil)
			Expect(err).To(MatchError(services.MsgMissingPartyFields))
			Expect(services.KindOf(err)).To(Equal(services.KindValidation))

			_, err = parties.CreateParty(owner.ID, services.PartyDraft{GameID: 1}, twoSpots(), nil)
			Expect(err).To(MatchError(services.MsgMissingPartyFields))
		})

		It("requires at least one spot besides the owner's", func() {
			_, err := parties.CreateParty(owner.ID, draft(), nil, nil)
			Expect(err).To(MatchError(services.MsgInsufficientSpots))

			var count int64
			db.Model(&models.Party{}).Count(&count)
			Expect(count).To(BeZero())
		})

		It("rejects more than two requirements", func() {
			_, err := parties.CreateParty(owner.ID, draft(), twoSpots(), []uint{1, 2, 3})
			Expect(err).To(MatchError(services.MsgTooManyRequirements))

			var count int64
			db.Model(&models.Party{}).Count(&count)
			Expect(count).To(BeZero())
		})

		It("rejects duplicate requirements before persisting anything", func() {
			_, err := parties.CreateParty(owner.ID, draft(), twoSpots(), []uint{2, 2})
			Expect(err).To(MatchError(services.MsgDuplicateRequirement))

			var count int64
			db.Model(&models.Party{}).Count(&count)
			Expect(count).To(BeZero())
			db.Model(&models.Requirement{}).Count(&count)
			Expect(count).To(BeZero())
		})

		It("creates the party with a filled owner spot and open requested spots", func() {
			partyID, err := parties.CreateParty(owner.ID, draft(), twoSpots(), []uint{1, 3})
			Expect(err).To(BeNil())
			Expect(partyID).NotTo(BeZero())

			var party models.Party
			Expect(db.Preload("Spots").Preload("Requirements").First(&party, partyID).Error).To(BeNil())
			Expect(party.Ready).To(BeFalse())
			Expect(party.Spots).To(HaveLen(3))
			Expect(party.Requirements).To(HaveLen(2))

			filled := 0
			for _, spot := range party.Spots {
				if spot.Filled != nil {
					Expect(*spot.Filled).To(Equal(owner.ID))
					filled++
				}
			}
			Expect(filled).To(Equal(1))
		})

		It("announces the new party to the game room", func() {
			_, err := parties.CreateParty(owner.ID, draft(), twoSpots(), nil)
			Expect(err).To(BeNil())
			Expect(hub.eventsIn(services.GameRoom(1))).To(Equal([]string{services.PostedParty}))
		})

		It("rejects an owner who already holds a spot elsewhere", func() {
			_, err := parties.CreateParty(owner.ID, draft(), twoSpots(), nil)
			Expect(err).To(BeNil())

			_, err = parties.CreateParty(owner.ID, draft(), twoSpots(), nil)
			Expect(err).To(MatchError(services.MsgAlreadyInParty))
			Expect(services.KindOf(err)).To(Equal(services.KindConflict))

			var count int64
			db.Model(&models.Party{}).Count(&count)
			Expect(count).To(Equal(int64(1)))
		})

		It("rejects a pre-filled spot naming a user who is already seated", func() {
			friend := createUser(db)
			_, err := parties.CreateParty(owner.ID, draft(), []services.SpotDraft{
				{Roles: []uint{1}, Filled: &friend.ID},
				{Roles: []uint{2}},
			}, nil)
			Expect(err).To(BeNil())

			second := createUser(db)
			_, err = parties.CreateParty(second.ID, draft(), []services.SpotDraft{
				{Roles: []uint{1}, Filled: &friend.ID},
			}, nil)
			Expect(err).To(MatchError(services.MsgAlreadyInParty))
			Expect(services.KindOf(err)).To(Equal(services.KindConflict))
		})

		It("marks a party with no open spots ready immediately", func() {
			friend := createUser(db)
			spots := []services.SpotDraft{{Roles: []uint{1}, Filled: &friend.ID}}

			partyID, err := parties.CreateParty(owner.ID, draft(), spots, nil)
			Expect(err).To(BeNil())

			var party models.Party
			Expect(db.First(&party, partyID).Error).To(BeNil())
			Expect(party.Ready).To(BeTrue())
		})
	})

	Describe("GetPartyView", func() {
		It("returns not found for an absent party", func() {
			_, err := parties.GetPartyView(9999)
			Expect(services.KindOf(err)).To(Equal(services.KindNotFound))
		})

		It("round-trips spots and requirements with catalog resolution", func() {
			partyID, err := parties.CreateParty(owner.ID, draft(), twoSpots(), []uint{1, 3})
			Expect(err).To(BeNil())

			view, err := parties.GetPartyView(partyID)
			Expect(err).To(BeNil())
			Expect(view.Spots).To(HaveLen(3))
			Expect(view.Reqs).To(HaveLen(2))
			Expect(view.SpotsLeft).To(Equal(2))
			Expect(view.Gamemode).NotTo(BeNil())
			Expect(view.Gamemode.Name).To(Equal("Competitive"))
			Expect(view.Reqs[0].Name).To(Equal("Gold rank or higher"))
			Expect(view.Owner).NotTo(BeNil())

			roleNames := []string{}
			for _, spot := range view.Spots {
				for _, role := range spot.Roles {
					Expect(role).NotTo(BeNil())
					roleNames = append(roleNames, role.Name)
				}
			}
			Expect(roleNames).To(ConsistOf("Tank", "Damage", "Support"))
		})

		It("escapes free text before it leaves the service", func() {
			d := draft()
			d.Title = "<script>Admin</script>"
			partyID, err := parties.CreateParty(owner.ID, d, twoSpots(), nil)
			Expect(err).To(BeNil())

			view, err := parties.GetPartyView(partyID)
			Expect(err).To(BeNil())
			Expect(view.Title).To(Equal("&lt;script&gt;Admin&lt;/script&gt;"))
		})

		It("degrades unknown catalog keys to null", func() {
			d := draft()
			d.Gamemode = 42
			partyID, err := parties.CreateParty(owner.ID, d, twoSpots(), []uint{99})
			Expect(err).To(BeNil())

			view, err := parties.GetPartyView(partyID)
			Expect(err).To(BeNil())
			Expect(view.Gamemode).To(BeNil())
			Expect(view.Reqs).To(HaveLen(1))
			Expect(view.Reqs[0]).To(BeNil())
		})
	})

	Describe("ListGameParties", func() {
		It("pages open parties newest first and skips ready ones", func() {
			for i := 0; i < services.PartyDisplayLimit+2; i++ {
				u := createUser(db)
				_, err := parties.CreateParty(u.ID, draft(), twoSpots(), nil)
				Expect(err).To(BeNil())
			}

			// A full party never shows up in the listing.
			full := createUser(db)
			friend := createUser(db)
			_, err := parties.CreateParty(full.ID, draft(), []services.SpotDraft{{Filled: &friend.ID}}, nil)
			Expect(err).To(BeNil())

			listing, err := parties.ListGameParties(1, 1)
			Expect(err).To(BeNil())
			Expect(listing.Parties).To(HaveLen(services.PartyDisplayLimit))
			Expect(listing.PagesAvailable).To(Equal(2))

			second, err := parties.ListGameParties(1, 2)
			Expect(err).To(BeNil())
			Expect(second.Parties).To(HaveLen(2))
		})

		It("returns an empty page rather than an error", func() {
			listing, err := parties.ListGameParties(3, 1)
			Expect(err).To(BeNil())
			Expect(listing.Parties).To(BeEmpty())
			Expect(listing.PagesAvailable).To(BeZero())
		})
	})

	Describe("UpdateParty", func() {
		It("lets only the owner edit metadata", func() {
			partyID, err := parties.CreateParty(owner.ID, draft(), twoSpots(), nil)
			Expect(err).To(BeNil())

			stranger := createUser(db)
			hijack := "mine now"
			_, err = parties.UpdateParty(stranger.ID, partyID, services.PartyUpdate{Title: &hijack})
			Expect(services.KindOf(err)).To(Equal(services.KindForbidden))

			fresh := "fresh title"
			view, err := parties.UpdateParty(owner.ID, partyID, services.PartyUpdate{Title: &fresh})
			Expect(err).To(BeNil())
			Expect(view.Title).To(Equal("fresh title"))
			Expect(hub.eventsIn(services.PartyRoom(partyID))).To(ContainElement(services.UpdateParty))
		})

		It("clears the description on an explicit empty string but never the title", func() {
			partyID, err := parties.CreateParty(owner.ID, draft(), twoSpots(), nil)
			Expect(err).To(BeNil())

			empty := ""
			view, err := parties.UpdateParty(owner.ID, partyID, services.PartyUpdate{Description: &empty})
			Expect(err).To(BeNil())
			Expect(view.Description).To(BeEmpty())
			Expect(view.Title).To(Equal(draft().Title))

			_, err = parties.UpdateParty(owner.ID, partyID, services.PartyUpdate{Title: &empty})
			Expect(services.KindOf(err)).To(Equal(services.KindValidation))
		})

		It("leaves omitted fields untouched", func() {
			partyID, err := parties.CreateParty(owner.ID, draft(), twoSpots(), nil)
			Expect(err).To(BeNil())

			mode := uint(1)
			view, err := parties.UpdateParty(owner.ID, partyID, services.PartyUpdate{Gamemode: &mode})
			Expect(err).To(BeNil())
			Expect(view.Gamemode.Name).To(Equal("Quick Play"))
			Expect(view.Title).To(Equal(draft().Title))
			Expect(view.Description).To(Equal("chill runs, mic preferred"))
		})
	})

	Describe("DeleteParty", func() {
		It("cascades spots, requirements and archived messages", func() {
			partyID, err := parties.CreateParty(owner.ID, draft(), twoSpots(), []uint{1})
			Expect(err).To(BeNil())

			msg := models.PartyMessage{
				PartyID:     partyID,
				OwnerID:     owner.ID,
				MessageBody: "see you in voice",
				TimeCreated: time.Now(),
				UnixStamp:   time.Now().UnixMilli(),
			}
			Expect(db.Create(&msg).Error).To(BeNil())

			stranger := createUser(db)
			Expect(services.KindOf(parties.DeleteParty(stranger.ID, partyID))).To(Equal(services.KindForbidden))

			Expect(parties.DeleteParty(owner.ID, partyID)).To(BeNil())

			var count int64
			db.Model(&models.Party{}).Count(&count)
			Expect(count).To(BeZero())
			db.Model(&models.Spot{}).Count(&count)
			Expect(count).To(BeZero())
			db.Model(&models.Requirement{}).Count(&count)
			Expect(count).To(BeZero())
			db.Model(&models.PartyMessage{}).Count(&count)
			Expect(count).To(BeZero())
			db.Model(&models.ArchivedMessage{}).Count(&count)
			Expect(count).To(Equal(int64(1)))

			Expect(hub.eventsIn(services.GameRoom(1))).To(ContainElement(services.DelistParty))
		})
	})

	Describe("PurgeAbandoned", func() {
		It("removes only stale parties nobody joined", func() {
			staleID, err := parties.CreateParty(owner.ID, draft(), twoSpots(), nil)
			Expect(err).To(BeNil())

			freshOwner := createUser(db)
			freshID, err := parties.CreateParty(freshOwner.ID, draft(), twoSpots(), nil)
			Expect(err).To(BeNil())

			old := time.Now().Add(-30 * 24 * time.Hour)
			Expect(db.Model(&models.Party{}).Where("id = ?", staleID).
				UpdateColumn("updated_at", old).Error).To(BeNil())

			purged, err := parties.PurgeAbandoned(14 * 24 * time.Hour)
			Expect(err).To(BeNil())
			Expect(purged).To(Equal(1))

			Expect(db.First(&models.Party{}, staleID).Error).To(MatchError(gorm.ErrRecordNotFound))
			Expect(db.First(&models.Party{}, freshID).Error).To(BeNil())
		})
	})
})
