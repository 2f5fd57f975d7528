package devserver

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

const (
	userCollection    = "users"
	counterCollection = "counters"
)

// UserRepository persists accounts in MongoDB. Numeric identifiers come
// from a counters document so they match the backend contract.
type UserRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll:     db.Collection(userCollection),
		counters: db.Collection(counterCollection),
	}
}

type mongoUser struct {
	ID           int    `bson:"idUtilisateur"`
	Prenom       string `bson:"prenom"`
	Nom          string `bson:"nom"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	UserType     string `bson:"userType"`
	Telephone    string `bson:"telephone,omitempty"`
	Adresse      string `bson:"adresse,omitempty"`
	Ville        string `bson:"ville,omitempty"`
	CodePostal   string `bson:"codePostal,omitempty"`
}

func (r *UserRepository) nextID(ctx context.Context) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "users"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next user id: %w", err)
	}
	return doc.Seq, nil
}

// Create inserts an account, rejecting duplicate emails.
func (r *UserRepository) Create(ctx context.Context, u *domain.Utilisateur, passwordHash string) (*domain.Utilisateur, error) {
	if existing := r.coll.FindOne(ctx, bson.M{"email": u.Email}); existing.Err() == nil {
		return nil, domain.ErrUserExists
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	doc := mongoUser{
		ID:           id,
		Prenom:       u.Prenom,
		Nom:          u.Nom,
		Email:        u.Email,
		PasswordHash: passwordHash,
		UserType:     u.UserType,
		Telephone:    u.Telephone,
		Adresse:      u.Adresse,
		Ville:        u.Ville,
		CodePostal:   u.CodePostal,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *u
	created.ID = id
	return &created, nil
}

// FindByEmail returns the account and its password hash.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.Utilisateur, string, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	return toUtilisateur(mu), mu.PasswordHash, nil
}

// FindByID returns the account.
func (r *UserRepository) FindByID(ctx context.Context, id int) (*domain.Utilisateur, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"idUtilisateur": id}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toUtilisateur(mu), nil
}

// Update overwrites the mutable profile fields.
func (r *UserRepository) Update(ctx context.Context, id int, u *domain.Utilisateur) (*domain.Utilisateur, error) {
	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"idUtilisateur": id},
		bson.M{"$set": bson.M{
			"prenom":     u.Prenom,
			"nom":        u.Nom,
			"telephone":  u.Telephone,
			"adresse":    u.Adresse,
			"ville":      u.Ville,
			"codePostal": u.CodePostal,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var mu mongoUser
	if err := res.Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return toUtilisateur(mu), nil
}

func toUtilisateur(mu mongoUser) *domain.Utilisateur {
	return &domain.Utilisateur{
		ID:         mu.ID,
		Prenom:     mu.Prenom,
		Nom:        mu.Nom,
		Email:      mu.Email,
		UserType:   mu.UserType,
		Telephone:  mu.Telephone,
		Adresse:    mu.Adresse,
		Ville:      mu.Ville,
		CodePostal: mu.CodePostal,
	}
}
