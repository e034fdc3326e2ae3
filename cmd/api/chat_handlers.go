package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/chat"
)

type chatRequest struct {
	Person []string `json:"person"`
}

// POST /chat — the creating actor is always a participant.
func createChatHandler(repo chat.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in chatRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		participants := in.Person
		seen := false
		for _, id := range participants {
			if id == actor.ID {
				seen = true
				break
			}
		}
		if !seen {
			participants = append(participants, actor.ID)
		}
		ch, err := repo.CreateChat(c.Request.Context(), participants)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create chat"})
			return
		}
		c.JSON(http.StatusCreated, ch)
	}
}

// GET /chat — chats the actor participates in.
func listChatsHandler(repo chat.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		out, err := repo.ListChatsByUser(c.Request.Context(), actor.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list chats"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /chat/:id/message
func listMessagesHandler(repo chat.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		if _, err := repo.GetChat(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		out, err := repo.ListMessages(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

type messageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
	Video string `json:"video"`
}

// POST /chat/:id/message
func postMessageHandler(repo chat.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in messageRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.Text == "" && in.Image == "" && in.Video == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message needs text, image or video"})
			return
		}
		if _, err := repo.GetChat(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		m := &chat.Message{
			ChatID:   c.Param("id"),
			AuthorID: actor.ID,
			Text:     in.Text,
			Image:    in.Image,
			Video:    in.Video,
		}
		if err := repo.AddMessage(c.Request.Context(), m); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}
