package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"campusboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPost(t *testing.T, app *fiber.App, auth string, body fiber.Map) *models.Post {
	t.Helper()
	req := jsonRequest("POST", "/api/publicacion/", body)
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	return &post
}

func avisoBody() fiber.Map {
	return fiber.Map{
		"tipo":      "aviso",
		"titulo":    "Se perdio mi mochila",
		"contenido": "La deje en la biblioteca el martes por la tarde",
		"categoria": "perdidos",
	}
}

func TestCreateAndGetPost(t *testing.T) {
	s, app := newTestServer(t)
	user := seedAccount(t, s, "jperez")
	auth := bearerFor(t, s, user)

	post := createTestPost(t, app, auth, avisoBody())
	assert.Equal(t, user.ID, post.AuthorID)
	assert.Equal(t, "aviso", post.PostType)

	// anonymous read
	resp, err := app.Test(httptest.NewRequest("GET", "/api/publicacion/"+post.ID, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Post
	decodeBody(t, resp, &got)
	assert.Equal(t, post.Title, got.Title)

	// malformed id
	resp, err = app.Test(httptest.NewRequest("GET", "/api/publicacion/not-hex", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// unknown id
	resp, err = app.Test(httptest.NewRequest("GET", "/api/publicacion/ffffffffffffffffffffffff", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest("POST", "/api/publicacion/", avisoBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePostValidation(t *testing.T) {
	s, app := newTestServer(t)
	auth := bearerFor(t, s, seedAccount(t, s, "jperez"))

	post := func(body fiber.Map) (int, string) {
		req := jsonRequest("POST", "/api/publicacion/", body)
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var errResp models.ErrorResponse
		decodeBody(t, resp, &errResp)
		return resp.StatusCode, errResp.Code
	}

	body := avisoBody()
	body["titulo"] = "ab"
	status, code := post(body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", code)

	body = avisoBody()
	body["categoria"] = "ventas" // mercado category on an aviso
	status, code = post(body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", code)

	// mercado listings must carry an image
	status, code = post(fiber.Map{
		"tipo":      "mercado",
		"titulo":    "Vendo bicicleta",
		"contenido": "Bicicleta de montana en buen estado, poco uso",
		"categoria": "ventas",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", code)

	// referencing an image never uploaded
	status, code = post(fiber.Map{
		"tipo":      "mercado",
		"titulo":    "Vendo bicicleta",
		"contenido": "Bicicleta de montana en buen estado, poco uso",
		"categoria": "ventas",
		"imagen":    "bici.jpg",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "IMAGE_NOT_FOUND", code)
}

func TestCreateMercadoWithUploadedImage(t *testing.T) {
	s, app := newTestServer(t)
	auth := bearerFor(t, s, seedAccount(t, s, "jperez"))

	_, err := s.images.Save("bici.jpg", strings.NewReader("fake jpg"))
	require.NoError(t, err)

	post := createTestPost(t, app, auth, fiber.Map{
		"tipo":      "mercado",
		"titulo":    "Vendo bicicleta",
		"contenido": "Bicicleta de montana en buen estado, poco uso",
		"categoria": "ventas",
		"imagen":    "bici.jpg",
	})
	assert.Equal(t, "bici.jpg", post.Image)
}

func TestListPostsFilters(t *testing.T) {
	s, app := newTestServer(t)
	auth := bearerFor(t, s, seedAccount(t, s, "jperez"))

	createTestPost(t, app, auth, avisoBody())
	createTestPost(t, app, auth, fiber.Map{
		"tipo":      "publicacion",
		"titulo":    "Grupo de estudio",
		"contenido": "Buscamos gente para repasar estructuras de datos",
		"categoria": "estudio",
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/publicacion/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all []*models.Post
	decodeBody(t, resp, &all)
	assert.Len(t, all, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/publicacion/?tipo=aviso", nil))
	require.NoError(t, err)
	var avisos []*models.Post
	decodeBody(t, resp, &avisos)
	require.Len(t, avisos, 1)
	assert.Equal(t, "aviso", avisos[0].PostType)

	// category without type is rejected
	resp, err = app.Test(httptest.NewRequest("GET", "/api/publicacion/?categoria=estudio", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReactions(t *testing.T) {
	s, app := newTestServer(t)
	auth := bearerFor(t, s, seedAccount(t, s, "jperez"))
	post := createTestPost(t, app, auth, avisoBody())

	react := func(action string) *models.Post {
		req := httptest.NewRequest("POST", "/api/publicacion/"+post.ID+"/"+action, nil)
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var updated models.Post
		decodeBody(t, resp, &updated)
		return &updated
	}

	react("like")
	// each reaction responds with the updated post
	liked := react("like")
	assert.Equal(t, 2, liked.LikeCount)

	disliked := react("dislike")
	assert.Equal(t, 1, disliked.DislikeCount)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/publicacion/"+post.ID, nil))
	require.NoError(t, err)
	var got models.Post
	decodeBody(t, resp, &got)
	assert.Equal(t, 2, got.LikeCount)
	assert.Equal(t, 1, got.DislikeCount)

	// reacting to a missing post
	req := httptest.NewRequest("POST", "/api/publicacion/ffffffffffffffffffffffff/like", nil)
	req.Header.Set("Authorization", auth)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeletePostAuthorization(t *testing.T) {
	s, app := newTestServer(t)
	author := seedAccount(t, s, "jperez")
	other := seedAccount(t, s, "mlopez")
	moderator := seedAccount(t, s, "mod", models.RoleUser, models.RoleModerator)

	authorAuth := bearerFor(t, s, author)
	post := createTestPost(t, app, authorAuth, avisoBody())

	del := func(id, auth string) int {
		req := httptest.NewRequest("DELETE", "/api/publicacion/"+id, nil)
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	// another plain user may not delete it
	assert.Equal(t, fiber.StatusForbidden, del(post.ID, bearerFor(t, s, other)))

	// the author may
	assert.Equal(t, fiber.StatusOK, del(post.ID, authorAuth))
	assert.Equal(t, fiber.StatusNotFound, del(post.ID, authorAuth))

	// a moderator may delete anyone's post
	post = createTestPost(t, app, authorAuth, avisoBody())
	assert.Equal(t, fiber.StatusOK, del(post.ID, bearerFor(t, s, moderator)))
}

func TestSanctionedUserCannotPublish(t *testing.T) {
	s, app := newTestServer(t)
	user := seedAccount(t, s, "jperez")
	moderator := seedAccount(t, s, "mod", models.RoleUser, models.RoleModerator)

	require.NoError(t, s.sanctionRepo.Create(context.Background(), &models.Sanction{
		UserID:   user.ID,
		Type:     models.SanctionSuspension,
		IssuedBy: moderator.ID,
	}))

	req := jsonRequest("POST", "/api/publicacion/", avisoBody())
	req.Header.Set("Authorization", bearerFor(t, s, user))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
