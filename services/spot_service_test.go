package services_test

import (
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/partyup/matchmaking_backend/catalog"
	"github.com/partyup/matchmaking_backend/models"
	"github.com/partyup/matchmaking_backend/services"
)

var _ = Describe("SpotService", func() {
	var (
		db      *gorm.DB
		hub     *fakeHub
		parties *services.PartyService
		spots   *services.SpotService
		owner   *models.User
		partyID uint
	)

	// openSpots returns the party's unfilled spots in id order.
	openSpots := func(partyID uint) []models.Spot {
		var out []models.Spot
		Expect(db.Where("party_id = ? AND filled IS NULL", partyID).
			Order("id ASC").Find(&out).Error).To(BeNil())
		return out
	}

	BeforeEach(func() {
		db = openTestDB()
		hub = &fakeHub{}
		logger := silentLogger()
		parties = &services.PartyService{
			DB:      db,
			Logger:  logger,
			Catalog: catalog.Load(),
			Hub:     hub,
		}
		spots = &services.SpotService{
			DB:      db,
			Logger:  logger,
			Parties: parties,
			Hub:     hub,
		}
		owner = createUser(db)

		var err error
		partyID, err = parties.CreateParty(owner.ID, services.PartyDraft{
			GameID:   1,
			Title:    "duo queue",
			Gamemode: 2,
		}, []services.SpotDraft{
			{Roles: []uint{1}},
			{Roles: []uint{3}},
		}, nil)
		Expect(err).To(BeNil())
	})

	Describe("ClaimSpot", func() {
		It("rejects a claim on a missing spot", func() {
			_, err := spots.ClaimSpot(createUser(db).ID, 9999)
			Expect(services.KindOf(err)).To(Equal(services.KindNotFound))
		})

		It("rejects a claim on a filled spot", func() {
			open := openSpots(partyID)
			claimer := createUser(db)
			_, err := spots.ClaimSpot(claimer.ID, open[0].ID)
			Expect(err).To(BeNil())

			late := createUser(db)
			_, err = spots.ClaimSpot(late.ID, open[0].ID)
			Expect(err).To(MatchError(services.MsgSpotTaken))
			Expect(services.KindOf(err)).To(Equal(services.KindConflict))
		})

		It("rejects a claimer who already holds a spot anywhere", func() {
			other := createUser(db)
			otherParty, err := parties.CreateParty(other.ID, services.PartyDraft{
				GameID: 2,
				Title:  "trios",
			}, []services.SpotDraft{{}}, nil)
			Expect(err).To(BeNil())

			claimer := createUser(db)
			_, err = spots.ClaimSpot(claimer.ID, openSpots(otherParty)[0].ID)
			Expect(err).To(BeNil())

			_, err = spots.ClaimSpot(claimer.ID, openSpots(partyID)[0].ID)
			Expect(err).To(MatchError(services.MsgAlreadyInParty))
		})

		It("fills the spot and reports the party state", func() {
			open := openSpots(partyID)
			claimer := createUser(db)

			result, err := spots.ClaimSpot(claimer.ID, open[0].ID)
			Expect(err).To(BeNil())
			Expect(result.PartyID).To(Equal(partyID))
			Expect(result.GameID).To(Equal(uint(1)))
			Expect(result.Delisted).To(BeFalse())

			var spot models.Spot
			Expect(db.First(&spot, open[0].ID).Error).To(BeNil())
			Expect(spot.Filled).NotTo(BeNil())
			Expect(*spot.Filled).To(Equal(claimer.ID))

			var party models.Party
			Expect(db.First(&party, partyID).Error).To(BeNil())
			Expect(party.Ready).To(BeFalse())

			Expect(hub.eventsIn(services.GameRoom(1))).To(ContainElement(services.SpotUpdated))
			Expect(hub.eventsIn(services.PartyRoom(partyID))).To(ContainElement(services.UpdateParty))
		})

		It("delists the party when the last open spot fills", func() {
			open := openSpots(partyID)
			first := createUser(db)
			second := createUser(db)

			result, err := spots.ClaimSpot(first.ID, open[0].ID)
			Expect(err).To(BeNil())
			Expect(result.Delisted).To(BeFalse())

			result, err = spots.ClaimSpot(second.ID, open[1].ID)
			Expect(err).To(BeNil())
			Expect(result.Delisted).To(BeTrue())

			var party models.Party
			Expect(db.First(&party, partyID).Error).To(BeNil())
			Expect(party.Ready).To(BeTrue())

			Expect(hub.eventsIn(services.GameRoom(1))).To(ContainElement(services.DelistParty))
		})

		It("lets exactly one of many racing claims win the same spot", func() {
			spotID := openSpots(partyID)[0].ID

			const racers = 8
			users := make([]*models.User, racers)
			for i := range users {
				users[i] = createUser(db)
			}

			var wg sync.WaitGroup
			errs := make([]error, racers)
			for i := 0; i < racers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = spots.ClaimSpot(users[i].ID, spotID)
				}(i)
			}
			wg.Wait()

			wins := 0
			for _, err := range errs {
				if err == nil {
					wins++
				} else {
					Expect(services.KindOf(err)).To(Equal(services.KindConflict))
				}
			}
			Expect(wins).To(Equal(1))
		})

		It("never lands one user in two parties under concurrent claims", func() {
			other := createUser(db)
			otherParty, err := parties.CreateParty(other.ID, services.PartyDraft{
				GameID: 2,
				Title:  "second squad",
			}, []services.SpotDraft{{}}, nil)
			Expect(err).To(BeNil())

			claimer := createUser(db)
			spotA := openSpots(partyID)[0].ID
			spotB := openSpots(otherParty)[0].ID

			var wg sync.WaitGroup
			var errA, errB error
			wg.Add(2)
			go func() { defer wg.Done(); _, errA = spots.ClaimSpot(claimer.ID, spotA) }()
			go func() { defer wg.Done(); _, errB = spots.ClaimSpot(claimer.ID, spotB) }()
			wg.Wait()

			var held int64
			Expect(db.Model(&models.Spot{}).Where("filled = ?", claimer.ID).Count(&held).Error).To(BeNil())
			Expect(held).To(BeNumerically("<=", 1))
			if errA == nil && errB == nil {
				Fail("both concurrent claims succeeded for one user")
			}
		})
	})

	Describe("LeaveSpot", func() {
		It("rejects a leave by someone else", func() {
			open := openSpots(partyID)
			claimer := createUser(db)
			_, err := spots.ClaimSpot(claimer.ID, open[0].ID)
			Expect(err).To(BeNil())

			stranger := createUser(db)
			err = spots.LeaveSpot(stranger.ID, open[0].ID)
			Expect(services.KindOf(err)).To(Equal(services.KindForbidden))
		})

		It("reopens the spot and relists a full party", func() {
			open := openSpots(partyID)
			first := createUser(db)
			second := createUser(db)
			_, err := spots.ClaimSpot(first.ID, open[0].ID)
			Expect(err).To(BeNil())
			_, err = spots.ClaimSpot(second.ID, open[1].ID)
			Expect(err).To(BeNil())

			Expect(spots.LeaveSpot(first.ID, open[0].ID)).To(BeNil())

			var spot models.Spot
			Expect(db.First(&spot, open[0].ID).Error).To(BeNil())
			Expect(spot.Filled).To(BeNil())

			var party models.Party
			Expect(db.First(&party, partyID).Error).To(BeNil())
			Expect(party.Ready).To(BeFalse())

			Expect(hub.eventsIn(services.GameRoom(1))).To(ContainElement(services.SpotUpdated))
			Expect(hub.eventsIn(services.PartyRoom(partyID))).To(ContainElement(services.UpdateParty))
		})
	})
})
